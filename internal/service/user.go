package service

import (
	"context"
	"errors"

	regexp "github.com/dlclark/regexp2"
	"golang.org/x/crypto/bcrypt"

	"blog/internal/domain"
	"blog/internal/repository"
)

var (
	ErrUserDuplicate         = repository.ErrUserDuplicate
	ErrInvalidUserOrPassword = errors.New("用户名或者密码不正确")
	ErrUserDisabled          = errors.New("用户已被禁用")
)

const emailRegexPattern = `^\w+([-+.]\w+)*@\w+([-.]\w+)*\.\w+([-.]\w+)*$`

type UserService interface {
	Signup(ctx context.Context, u domain.User) error
	// Login 账号既可以是用户名也可以是邮箱
	Login(ctx context.Context, account, password string) (domain.User, error)
	Profile(ctx context.Context, id int64) (domain.User, error)
	UpdateInfo(ctx context.Context, u domain.User) error
}

type userService struct {
	repo     repository.UserRepository
	emailExp *regexp.Regexp
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{
		repo:     repo,
		emailExp: regexp.MustCompile(emailRegexPattern, regexp.None),
	}
}

func (svc *userService) Signup(ctx context.Context, u domain.User) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return svc.repo.Create(ctx, u)
}

func (svc *userService) Login(ctx context.Context, account, password string) (domain.User, error) {
	u, err := svc.find(ctx, account)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, ErrInvalidUserOrPassword
	}
	if err != nil {
		return domain.User{}, err
	}
	err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		return domain.User{}, ErrInvalidUserOrPassword
	}
	if u.IsDisabled {
		return domain.User{}, ErrUserDisabled
	}
	return u, nil
}

func (svc *userService) find(ctx context.Context, account string) (domain.User, error) {
	isEmail, err := svc.emailExp.MatchString(account)
	if err != nil {
		return domain.User{}, err
	}
	if isEmail {
		return svc.repo.FindByEmail(ctx, account)
	}
	return svc.repo.FindByUsername(ctx, account)
}

func (svc *userService) Profile(ctx context.Context, id int64) (domain.User, error) {
	return svc.repo.FindById(ctx, id)
}

func (svc *userService) UpdateInfo(ctx context.Context, u domain.User) error {
	// 这条路径不允许改密码和禁用状态
	u.Password = ""
	u.IsDisabled = false
	return svc.repo.Update(ctx, u)
}
