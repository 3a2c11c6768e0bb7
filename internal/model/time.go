package model

import (
	"fmt"
	"time"
)

// LocalTime 以 "YYYY-MM-DD HH:MM:SS"（UTC）格式序列化时间，与 SQLite datetime('now') 的格式一致。
type LocalTime time.Time

const timeFormat = "2006-01-02 15:04:05"

// MarshalJSON implements the json.Marshaler interface.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("\"%s\"", time.Time(t).UTC().Format(timeFormat))
	return []byte(formatted), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	parsed, err := time.Parse(`"`+timeFormat+`"`, string(data))
	if err != nil {
		return fmt.Errorf("invalid time %s: %w", data, err)
	}
	*t = LocalTime(parsed)
	return nil
}
