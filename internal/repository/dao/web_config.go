package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WebConfig 网站配置表，key → value
type WebConfig struct {
	Id          int64  `gorm:"primaryKey,autoIncrement"`
	ConfigKey   string `gorm:"type:varchar(64);unique"`
	ConfigValue string `gorm:"type:varchar(1024)"`
	Ctime       int64
	Utime       int64
}

type WebConfigDAO interface {
	Get(ctx context.Context, key string) (WebConfig, error)
	Upsert(ctx context.Context, key, value string) error
}

type GORMWebConfigDAO struct {
	db *gorm.DB
}

func NewGORMWebConfigDAO(db *gorm.DB) WebConfigDAO {
	return &GORMWebConfigDAO{
		db: db,
	}
}

func (dao *GORMWebConfigDAO) Get(ctx context.Context, key string) (WebConfig, error) {
	var cfg WebConfig
	err := dao.db.WithContext(ctx).First(&cfg, "config_key = ?", key).Error
	return cfg, err
}

func (dao *GORMWebConfigDAO) Upsert(ctx context.Context, key, value string) error {
	now := time.Now().UnixMilli()
	return dao.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"config_value": value,
			"utime":        now,
		}),
	}).Create(&WebConfig{
		ConfigKey:   key,
		ConfigValue: value,
		Ctime:       now,
		Utime:       now,
	}).Error
}
