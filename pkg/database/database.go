// Package database 负责建立用户库的 GORM 连接。
package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"lucai-go/internal/config"
	"lucai-go/pkg/log"
)

// gormLogWriter 将 GORM 的日志输出转接到 zap。
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(gormLogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// Open 根据配置中的驱动打开数据库连接。
// 返回的 *gorm.DB 在进程生命周期内只创建一次，由调用方注入到各个 Repository。
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return OpenSQLite(cfg.Path)
	case "mysql":
		return OpenMySQL(cfg.DSN)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
}

// Close 关闭底层的 sql.DB。
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
