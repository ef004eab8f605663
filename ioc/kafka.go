package ioc

import (
	"github.com/IBM/sarama"
	"github.com/spf13/viper"

	events "blog/internal/events/article"
)

func InitKafka() sarama.Client {
	type Config struct {
		Addrs []string `yaml:"addrs"`
	}
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = true
	cfg := Config{
		Addrs: []string{"localhost:9094"},
	}
	err := viper.UnmarshalKey("kafka", &cfg)
	if err != nil {
		panic(err)
	}
	client, err := sarama.NewClient(cfg.Addrs, saramaCfg)
	if err != nil {
		panic(err)
	}
	return client
}

func NewSyncProducer(client sarama.Client) sarama.SyncProducer {
	producer, err := sarama.NewSyncProducerFromClient(client)
	if err != nil {
		panic(err)
	}
	return producer
}

func InitConsumerGroup(client sarama.Client) sarama.ConsumerGroup {
	group, err := sarama.NewConsumerGroupFromClient("blog", client)
	if err != nil {
		panic(err)
	}
	return group
}

// NewConsumers 注册所有的消费者，新增消费者在这里接上
func NewConsumers(readEvent *events.ReadEventBatchConsumer) []events.Consumer {
	return []events.Consumer{readEvent}
}
