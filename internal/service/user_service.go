package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"gorm.io/gorm"
	"lucai-go/internal/model"
	"lucai-go/internal/repository"
	"lucai-go/pkg/log"
)

// UserService 接口定义了用户库的只读查询以及启动时的种子写入。
type UserService interface {
	ListUsers(ctx context.Context) ([]model.UserDTO, error)
	GetUser(ctx context.Context, rawID string) (*model.UserDTO, error)
	EnsureSeeded(ctx context.Context) error
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo repository.UserRepository
	seeds    []model.User
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, seeds []model.User) UserService {
	return &userService{userRepo: userRepo, seeds: seeds}
}

// ListUsers 返回全部用户，最近创建的在前。
func (s *userService) ListUsers(ctx context.Context) ([]model.UserDTO, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询用户列表失败: %w", err)
	}
	dtos := make([]model.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}
	return dtos, nil
}

// GetUser 解析路径中的 ID 并返回对应用户。
// 找不到任何数字时返回 ValidationError；不存在（包括非正数 ID）返回 NotFoundError。
func (s *userService) GetUser(ctx context.Context, rawID string) (*model.UserDTO, error) {
	id, ok := parseLeadingInt(rawID)
	if !ok {
		return nil, &ValidationError{Message: MsgInvalidUserID}
	}
	if id <= 0 {
		return nil, &NotFoundError{Message: MsgUserNotFound}
	}

	user, err := s.userRepo.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: MsgUserNotFound}
		}
		return nil, fmt.Errorf("查询用户 %d 失败: %w", id, err)
	}
	dto := user.ToDTO()
	return &dto, nil
}

// EnsureSeeded 在用户表为空时写入种子数据，重复调用不会产生重复行。
func (s *userService) EnsureSeeded(ctx context.Context) error {
	inserted, err := s.userRepo.SeedIfEmpty(ctx, s.seeds)
	if err != nil {
		return fmt.Errorf("写入种子用户失败: %w", err)
	}
	if inserted > 0 {
		log.Infof("[UserService] 已写入 %d 条种子用户", inserted)
	} else {
		log.Info("[UserService] 用户表非空，跳过种子写入")
	}
	return nil
}

// parseLeadingInt 跳过前导空白，读取可选符号与紧随其后的十进制数字，忽略之后的内容。
// 例如 "1abc"、"1.5"、" 1" 都解析为 1。超出 int64 范围时取边界值。
func parseLeadingInt(raw string) (int64, bool) {
	rest := strings.TrimLeftFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	sign := ""
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		sign, rest = rest[:1], rest[1:]
	}
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	// 溢出时 ParseInt 返回 MaxInt64/MinInt64，足以得到"不存在"
	id, _ := strconv.ParseInt(sign+rest[:end], 10, 64)
	return id, true
}
