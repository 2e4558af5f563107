package mq

import (
	"venturedeck/internal/config"
	ws "venturedeck/internal/gateway/websocket"

	"go.uber.org/zap"
)

// NewPublisher 按 messageMode 选择事件发布方式
// channel: 直接投递本地 Hub；kafka: 经 Kafka 广播给所有实例
// 返回的 stop 在进程退出时调用
func NewPublisher(conf config.KafkaConfig, hub *ws.Hub) (ws.Publisher, func()) {
	if conf.MessageMode != "kafka" {
		zap.L().Info("Realtime events use in-process hub")
		return hub, func() {}
	}
	bridge := NewKafkaBridge(conf, hub)
	bridge.Start()
	return bridge, bridge.Close
}
