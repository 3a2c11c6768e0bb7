package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"lucai-go/pkg/log"
)

// OpenSQLite 打开嵌入式 SQLite 数据库文件，父目录不存在时自动创建。
func OpenSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite 驱动需要配置 database.path")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// 单连接：所有读写串行经过同一个句柄
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("设置 WAL 模式失败: %w", err)
	}

	log.Infof("SQLite database opened at %s", path)
	return db, nil
}
