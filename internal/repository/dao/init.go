package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Article{},
		&Category{},
		&Tag{},
		&ArticleTag{},
		&User{},
		&Role{},
		&RoleMtmResource{},
		&UserMtmRole{},
		&WebConfig{},
	)
}
