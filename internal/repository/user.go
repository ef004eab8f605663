package repository

import (
	"context"
	"database/sql"
	"time"

	"blog/internal/domain"
	"blog/internal/repository/cache"
	"blog/internal/repository/dao"
	"blog/pkg/logger"
)

var (
	ErrUserDuplicate = dao.ErrUserDuplicate
	ErrUserNotFound  = dao.ErrDataNotFound
)

type UserRepository interface {
	Create(ctx context.Context, u domain.User) error
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindById(ctx context.Context, id int64) (domain.User, error)
	Update(ctx context.Context, u domain.User) error
}

type CachedUserRepository struct {
	dao   dao.UserDAO
	cache cache.UserCache
	l     logger.Logger
}

func NewCachedUserRepository(d dao.UserDAO, c cache.UserCache, l logger.Logger) UserRepository {
	return &CachedUserRepository{
		dao:   d,
		cache: c,
		l:     l,
	}
}

func (repo *CachedUserRepository) Create(ctx context.Context, u domain.User) error {
	return repo.dao.Insert(ctx, repo.toEntity(u))
}

func (repo *CachedUserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := repo.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	return repo.toDomain(u), nil
}

func (repo *CachedUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := repo.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	return repo.toDomain(u), nil
}

func (repo *CachedUserRepository) FindById(ctx context.Context, id int64) (domain.User, error) {
	du, err := repo.cache.Get(ctx, id)
	if err == nil {
		return du, nil
	}
	u, err := repo.dao.FindById(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	du = repo.toDomain(u)
	err = repo.cache.Set(ctx, du)
	if err != nil {
		// 回填失败不影响主流程
		repo.l.Error("回写用户缓存失败",
			logger.Int64("uid", id), logger.Error(err))
	}
	return du, nil
}

func (repo *CachedUserRepository) Update(ctx context.Context, u domain.User) error {
	err := repo.dao.UpdateNonZeroFields(ctx, repo.toEntity(u))
	if err != nil {
		return err
	}
	return repo.cache.Del(ctx, u.Id)
}

func (repo *CachedUserRepository) toDomain(u dao.User) domain.User {
	return domain.User{
		Id:         u.Id,
		Username:   u.Username,
		Password:   u.Password,
		Email:      u.Email.String,
		Nickname:   u.Nickname.String,
		Avatar:     u.Avatar.String,
		Intro:      u.Intro.String,
		Website:    u.Website.String,
		IsDisabled: u.IsDisabled,
		Ctime:      time.UnixMilli(u.Ctime),
	}
}

func (repo *CachedUserRepository) toEntity(u domain.User) dao.User {
	return dao.User{
		Id:       u.Id,
		Username: u.Username,
		Password: u.Password,
		Email: sql.NullString{
			String: u.Email,
			Valid:  u.Email != "",
		},
		Nickname: sql.NullString{
			String: u.Nickname,
			Valid:  u.Nickname != "",
		},
		Avatar: sql.NullString{
			String: u.Avatar,
			Valid:  u.Avatar != "",
		},
		Intro: sql.NullString{
			String: u.Intro,
			Valid:  u.Intro != "",
		},
		Website: sql.NullString{
			String: u.Website,
			Valid:  u.Website != "",
		},
		IsDisabled: u.IsDisabled,
	}
}
