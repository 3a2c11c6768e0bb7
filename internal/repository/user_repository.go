// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"lucai-go/internal/model"
)

// UserRepository 接口定义了用户数据的只读访问与一次性种子写入。
type UserRepository interface {
	// FindAll 按创建时间倒序返回所有用户。
	FindAll(ctx context.Context) ([]model.User, error)
	// FindByID 根据 ID 查找用户，不存在时返回 gorm.ErrRecordNotFound。
	FindByID(ctx context.Context, userID uint) (*model.User, error)
	// Count 返回用户总数。
	Count(ctx context.Context) (int64, error)
	// SeedIfEmpty 在表为空时以单个事务插入种子数据，返回实际插入的行数。
	SeedIfEmpty(ctx context.Context, seeds []model.User) (int, error)
}

// userRepository 是 UserRepository 接口的 GORM 实现。
type userRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserRepository 创建一个新的 UserRepository 实例。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, now: time.Now}
}

// Migrate 创建或更新 users 表结构（含 email 唯一索引）。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// FindAll 从数据库中检索所有用户记录，最近创建的在前。
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error
	return users, err
}

// FindByID 根据用户 ID 从数据库中查找一个用户。
func (r *userRepository) FindByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Count 返回 users 表中的记录数。
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error
	return total, err
}

// SeedIfEmpty 在事务内检查表是否为空，为空则逐行插入种子数据。
// 任何一行失败都会回滚整个事务；表非空时不做任何操作。
func (r *userRepository) SeedIfEmpty(ctx context.Context, seeds []model.User) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&model.User{}).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if total > 0 {
			return nil
		}
		base := r.now().UTC().Truncate(time.Second)
		for i := range seeds {
			row := seeds[i]
			row.ID = 0
			// 逐行递增创建时间，保证按 created_at 倒序时顺序稳定
			row.CreatedAt = base.Add(time.Duration(i) * time.Second)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to insert seed user %s: %w", row.Email, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
