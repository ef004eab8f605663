package ioc

import (
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/spf13/viper"

	"blog/pkg/storage"
)

func InitOSS() storage.Provider {
	type Config struct {
		Endpoint        string `yaml:"endpoint"`
		AccessKeyId     string `yaml:"accessKeyId"`
		AccessKeySecret string `yaml:"accessKeySecret"`
		Bucket          string `yaml:"bucket"`
		Host            string `yaml:"host"`
	}
	var cfg Config
	err := viper.UnmarshalKey("oss", &cfg)
	if err != nil {
		panic(err)
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyId, cfg.AccessKeySecret)
	if err != nil {
		panic(err)
	}
	provider, err := storage.NewOSSProvider(client, cfg.Bucket, cfg.Host)
	if err != nil {
		panic(err)
	}
	return provider
}
