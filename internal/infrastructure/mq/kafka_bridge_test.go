package mq

import (
	"encoding/json"
	"testing"

	"venturedeck/internal/config"
	ws "venturedeck/internal/gateway/websocket"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEventFallsBackToKey(t *testing.T) {
	evt, err := ws.NewEvent(ws.TypeMessageCreated, "", map[string]string{"content": "hi"})
	require.NoError(t, err)
	value, err := json.Marshal(evt)
	require.NoError(t, err)

	got, err := decodeEvent(kafka.Message{Key: []byte("conversation:C1"), Value: value})
	require.NoError(t, err)
	assert.Equal(t, "conversation:C1", got.Topic)
	assert.Equal(t, ws.TypeMessageCreated, got.Type)

	_, err = decodeEvent(kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestNewPublisherChannelModeUsesHub(t *testing.T) {
	hub := ws.NewHub()
	pub, stop := NewPublisher(config.KafkaConfig{MessageMode: "channel"}, hub)
	defer stop()
	assert.Same(t, hub, pub)
}
