package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrUserDuplicate 用户名或者邮箱冲突
var ErrUserDuplicate = errors.New("用户名或者邮箱冲突")

type UserDAO interface {
	Insert(ctx context.Context, u User) error
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindById(ctx context.Context, id int64) (User, error)
	UpdateNonZeroFields(ctx context.Context, u User) error
}

type GormUserDAO struct {
	db *gorm.DB
}

func NewGormUserDAO(db *gorm.DB) UserDAO {
	return &GormUserDAO{
		db: db,
	}
}

func (ud *GormUserDAO) Insert(ctx context.Context, u User) error {
	now := time.Now().UnixMilli()
	u.Ctime = now
	u.Utime = now
	err := ud.db.WithContext(ctx).Create(&u).Error
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return ErrUserDuplicate
		}
	}
	return err
}

func (ud *GormUserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := ud.db.WithContext(ctx).First(&u, "username = ?", username).Error
	return u, err
}

func (ud *GormUserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := ud.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return u, err
}

func (ud *GormUserDAO) FindById(ctx context.Context, id int64) (User, error) {
	var u User
	err := ud.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, err
}

// UpdateNonZeroFields 依赖 gorm 的默认语义：用 Id 做 WHERE，只更新非零字段
func (ud *GormUserDAO) UpdateNonZeroFields(ctx context.Context, u User) error {
	u.Utime = time.Now().UnixMilli()
	return ud.db.WithContext(ctx).Updates(&u).Error
}

// User 用户表
type User struct {
	Id       int64          `gorm:"primaryKey,autoIncrement"`
	Username string         `gorm:"type:varchar(64);unique"`
	Password string         `gorm:"type:varchar(128)"`
	Email    sql.NullString `gorm:"unique"`
	Nickname sql.NullString `gorm:"type:varchar(64)"`
	Avatar   sql.NullString `gorm:"type:varchar(512)"`
	// 自我介绍
	Intro      sql.NullString `gorm:"type:varchar(1024)"`
	Website    sql.NullString `gorm:"type:varchar(256)"`
	IsDisabled bool

	Ctime int64
	Utime int64
}
