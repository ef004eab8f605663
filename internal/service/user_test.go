package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog/internal/domain"
	"blog/internal/repository"
)

type userFakeRepo struct {
	repository.UserRepository

	users map[string]domain.User
	// 记录走的是哪条查询路径
	lastLookup string
}

func (f *userFakeRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	f.lastLookup = "username"
	u, ok := f.users[username]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *userFakeRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	f.lastLookup = "email"
	u, ok := f.users[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func TestUserService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hello#world123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &userFakeRepo{
		users: map[string]domain.User{
			"zhangsan": {
				Id:       1,
				Username: "zhangsan",
				Password: string(hash),
			},
			"lisi@example.com": {
				Id:       2,
				Username: "lisi",
				Email:    "lisi@example.com",
				Password: string(hash),
			},
			"wangwu": {
				Id:         3,
				Username:   "wangwu",
				Password:   string(hash),
				IsDisabled: true,
			},
		},
	}
	svc := NewUserService(repo)
	ctx := context.Background()

	t.Run("用户名登录成功", func(t *testing.T) {
		u, err := svc.Login(ctx, "zhangsan", "hello#world123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.Id)
		assert.Equal(t, "username", repo.lastLookup)
	})
	t.Run("邮箱登录成功", func(t *testing.T) {
		u, err := svc.Login(ctx, "lisi@example.com", "hello#world123")
		require.NoError(t, err)
		assert.Equal(t, int64(2), u.Id)
		assert.Equal(t, "email", repo.lastLookup)
	})
	t.Run("密码不对", func(t *testing.T) {
		_, err := svc.Login(ctx, "zhangsan", "wrong password")
		assert.Equal(t, ErrInvalidUserOrPassword, err)
	})
	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "hello#world123")
		assert.Equal(t, ErrInvalidUserOrPassword, err)
	})
	t.Run("用户被禁用", func(t *testing.T) {
		_, err := svc.Login(ctx, "wangwu", "hello#world123")
		assert.Equal(t, ErrUserDisabled, err)
	})
}
