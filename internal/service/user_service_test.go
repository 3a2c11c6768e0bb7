package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"lucai-go/internal/model"
)

type fakeUserRepo struct {
	users   []model.User
	seeded  int
	findErr error
}

func (f *fakeUserRepo) FindAll(context.Context) ([]model.User, error) {
	return f.users, f.findErr
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) SeedIfEmpty(_ context.Context, seeds []model.User) (int, error) {
	if len(f.users) > 0 {
		return 0, nil
	}
	for i, s := range seeds {
		s.ID = uint(i + 1)
		f.users = append(f.users, s)
	}
	f.seeded++
	return len(seeds), nil
}

func TestUserService_GetUser(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeUserRepo{users: []model.User{{ID: 7, Name: "Ana", Email: "ana@lucai.bio", CreatedAt: created}}}
	svc := NewUserService(repo, nil)

	user, err := svc.GetUser(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "ana@lucai.bio", user.Email)

	// 重复读取返回相同文档
	again, err := svc.GetUser(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, user, again)
}

func TestUserService_GetUserErrors(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, nil)

	for _, raw := range []string{"abc", "", "  ", "-", "+x", "x1"} {
		_, err := svc.GetUser(context.Background(), raw)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr, "id %q", raw)
	}

	for _, raw := range []string{"42", "0", "-3"} {
		_, err := svc.GetUser(context.Background(), raw)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound, "id %q", raw)
	}
}

func TestUserService_GetUserLeadingDigits(t *testing.T) {
	repo := &fakeUserRepo{users: []model.User{{ID: 1, Name: "Ana", Email: "ana@lucai.bio"}}}
	svc := NewUserService(repo, nil)

	for _, raw := range []string{"1abc", "1.5", " 1", "\t1", "+1", "01", "1e9"} {
		user, err := svc.GetUser(context.Background(), raw)
		require.NoError(t, err, "id %q", raw)
		assert.Equal(t, uint(1), user.ID, "id %q", raw)
	}

	_, err := svc.GetUser(context.Background(), "99999999999999999999")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestParseLeadingInt(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"12", 12, true},
		{"12abc", 12, true},
		{"  -3", -3, true},
		{"-0", 0, true},
		{"3.9", 3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"- 1", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseLeadingInt(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestUserService_GetUserRepositoryFailure(t *testing.T) {
	boom := errors.New("disk I/O error")
	svc := NewUserService(&fakeUserRepo{findErr: boom}, nil)

	_, err := svc.GetUser(context.Background(), "1")
	assert.ErrorIs(t, err, boom)

	_, err = svc.ListUsers(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestUserService_EnsureSeededOnce(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, []model.User{{Name: "A", Email: "a@x"}, {Name: "B", Email: "b@x"}})

	require.NoError(t, svc.EnsureSeeded(context.Background()))
	require.NoError(t, svc.EnsureSeeded(context.Background()))

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 1, repo.seeded)
}
