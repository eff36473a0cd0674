package rocketmq

import (
	"Loyo/config"
	"Loyo/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// Publisher 积分事件发布器。发送失败只打日志，不影响主流程
type Publisher struct {
	producer rocketmq.Producer
	topic    string
}

func InitPublisher(cfg *config.RocketMQConfig) *Publisher {
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		panic(err)
	}
	if err = p.Start(); err != nil {
		log.L.Fatal("start rocketmq producer error", zap.Error(err))
	}
	log.L.Info("init producer success")

	return &Publisher{producer: p, topic: cfg.Producer.Topic}
}

func (p *Publisher) Publish(ctx context.Context, body []byte) error {
	msg := &primitive.Message{
		Topic: p.topic,
		Body:  body,
	}

	res, err := p.producer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.Any("msg", res.MsgID))
	return nil
}
