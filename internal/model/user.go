// Package model 定义了与数据库表对应的 Go 结构体以及对外的 DTO。
package model

import "time"

// User 对应于数据库中的 'users' 表。
// 种子数据写入后行不可变，仓储层不提供更新与删除操作。
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Organization *string   `gorm:"type:varchar(255)"`
	Role         *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (User) TableName() string {
	return "users"
}

// UserDTO 是返回给前端的用户结构。
type UserDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Organization *string   `json:"organization"`
	Role         *string   `json:"role"`
	CreatedAt    LocalTime `json:"created_at"`
}

// ToDTO 将数据库模型转换为对外结构。
func (u User) ToDTO() UserDTO {
	return UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Organization: u.Organization,
		Role:         u.Role,
		CreatedAt:    LocalTime(u.CreatedAt),
	}
}
