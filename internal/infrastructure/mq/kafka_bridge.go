// Package mq 负责多实例部署时的实时事件分发
// 事件写入 Kafka，每个实例以独立消费组读取全部事件后投递到本地 Hub
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"venturedeck/internal/config"
	ws "venturedeck/internal/gateway/websocket"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaBridge 实现 ws.Publisher，并把消费到的事件转发给本地 Hub
type KafkaBridge struct {
	writer *kafka.Writer
	reader *kafka.Reader
	hub    *ws.Hub
	cancel context.CancelFunc
	done   chan struct{}
}

// NewKafkaBridge 创建 Kafka 写入端和读取端
// 消费组 ID 每个实例唯一，从最新 offset 开始，历史事件由 HTTP 接口补齐
func NewKafkaBridge(conf config.KafkaConfig, hub *ws.Hub) *KafkaBridge {
	return &KafkaBridge{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.HostPort),
			Topic:                  conf.EventTopic,
			Balancer:               &kafka.Hash{}, // 同一 topic 的事件进入同一分区，保证顺序
			WriteTimeout:           conf.Timeout,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{conf.HostPort},
			Topic:          conf.EventTopic,
			GroupID:        "venturedeck-" + uuid.NewString(),
			StartOffset:    kafka.LastOffset,
			CommitInterval: time.Second,
			MaxWait:        500 * time.Millisecond,
		}),
		hub:  hub,
		done: make(chan struct{}),
	}
}

// Publish 以事件 topic 作为消息 key 写入 Kafka
func (b *KafkaBridge) Publish(ctx context.Context, event ws.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.writer.WriteMessages(ctx, kafka.Message{Key: []byte(event.Topic), Value: value})
}

// Start 启动消费循环
func (b *KafkaBridge) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go func() {
		defer close(b.done)
		for {
			msg, err := b.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				zap.L().Error("kafka read event failed", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			event, err := decodeEvent(msg)
			if err != nil {
				zap.L().Error("kafka decode event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
				continue
			}
			b.hub.Dispatch(event)
		}
	}()
	zap.L().Info("Kafka event bridge started", zap.String("topic", b.reader.Config().Topic))
}

// Close 停止消费并关闭连接
func (b *KafkaBridge) Close() {
	if b.cancel != nil {
		b.cancel()
		<-b.done
	}
	if err := b.writer.Close(); err != nil {
		zap.L().Error("kafka writer close failed", zap.Error(err))
	}
	if err := b.reader.Close(); err != nil {
		zap.L().Error("kafka reader close failed", zap.Error(err))
	}
}

func decodeEvent(msg kafka.Message) (ws.Event, error) {
	var event ws.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return ws.Event{}, err
	}
	if event.Topic == "" {
		event.Topic = string(msg.Key)
	}
	return event, nil
}
