package ioc

import (
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"blog/internal/repository/dao"
	prometheus "blog/pkg/gormx/callbacks/prometheus"
)

func InitDB() *gorm.DB {
	type Config struct {
		DSN string `yaml:"dsn"`
	}
	cfg := Config{
		DSN: "root:root@tcp(localhost:3306)/blog?charset=utf8mb4&parseTime=True&loc=Local",
	}
	err := viper.UnmarshalKey("db", &cfg)
	if err != nil {
		panic(err)
	}
	db, err := gorm.Open(mysql.Open(cfg.DSN))
	if err != nil {
		panic(err)
	}

	cb := prometheus.Callbacks{
		Namespace:  "blog",
		Subsystem:  "web",
		Name:       "gorm_query_time",
		InstanceId: "instance-1",
		Help:       "统计 GORM 的执行时间",
	}
	err = cb.Register(db)
	if err != nil {
		panic(err)
	}

	err = dao.InitTables(db)
	if err != nil {
		panic(err)
	}
	return db
}
