// Package websocket 提供实时事件的进程内分发和 WebSocket 推送
// Service 层通过 Publisher 发布事件，连接按 topic 订阅
package websocket

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultBufferSize 每个订阅者的默认缓冲
const DefaultBufferSize = 64

// Type 事件类型
type Type string

const (
	TypeMessageCreated      Type = "message_created"
	TypeMessagesRead        Type = "messages_read"
	TypeNotificationCreated Type = "notification_created"
)

// Event 推送给客户端的事件
type Event struct {
	Type  Type            `json:"type"`
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data,omitempty"`
	At    time.Time       `json:"at"`
}

// NewEvent 序列化 payload 构造事件
func NewEvent(t Type, topic string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: t, Topic: topic, Data: data, At: time.Now()}, nil
}

// ConversationTopic 会话内消息的 topic
func ConversationTopic(conversationId string) string {
	return "conversation:" + conversationId
}

// NotificationTopic 用户通知的 topic
func NotificationTopic(userId string) string {
	return "notification:" + userId
}

// Publisher 事件发布接口，单机模式为 Hub，多实例模式为 Kafka 写入端
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Hub 进程内按 topic 分发的发布订阅中心
type Hub struct {
	mu      sync.RWMutex
	streams map[string]map[string]chan Event
}

// NewHub 创建空的 Hub
func NewHub() *Hub {
	return &Hub{streams: map[string]map[string]chan Event{}}
}

// Publish 实现 Publisher，直接分发到本地订阅者
func (h *Hub) Publish(_ context.Context, event Event) error {
	h.Dispatch(event)
	return nil
}

// Dispatch 把事件广播给同一 topic 的全部订阅者
// 订阅者消费过慢时丢弃，不阻塞写库路径
func (h *Hub) Dispatch(event Event) {
	if h == nil {
		return
	}
	topic := strings.TrimSpace(event.Topic)
	if topic == "" {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.streams[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe 订阅一个 topic，返回订阅 ID、只读事件通道和取消函数
// 取消函数可重复调用，调用后通道关闭
func (h *Hub) Subscribe(topic string, buffer int) (string, <-chan Event, func()) {
	topic = strings.TrimSpace(topic)
	if h == nil || topic == "" {
		ch := make(chan Event)
		close(ch)
		return "", ch, func() {}
	}
	if buffer <= 0 {
		buffer = DefaultBufferSize
	}

	streamID := uuid.NewString()
	ch := make(chan Event, buffer)

	h.mu.Lock()
	streams, ok := h.streams[topic]
	if !ok {
		streams = map[string]chan Event{}
		h.streams[topic] = streams
	}
	streams[streamID] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			streams := h.streams[topic]
			if current, ok := streams[streamID]; ok {
				delete(streams, streamID)
				close(current)
			}
			if len(streams) == 0 {
				delete(h.streams, topic)
			}
		})
	}
	return streamID, ch, cancel
}

// Subscribers 当前 topic 的订阅数
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[topic])
}
