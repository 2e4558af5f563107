package websocket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToTopicOnly(t *testing.T) {
	hub := NewHub()
	_, convCh, cancelConv := hub.Subscribe(ConversationTopic("C1"), 4)
	defer cancelConv()
	_, otherCh, cancelOther := hub.Subscribe(ConversationTopic("C2"), 4)
	defer cancelOther()

	evt, err := NewEvent(TypeMessageCreated, ConversationTopic("C1"), map[string]string{"content": "hi"})
	require.NoError(t, err)
	require.NoError(t, hub.Publish(context.Background(), evt))

	got := <-convCh
	assert.Equal(t, TypeMessageCreated, got.Type)
	assert.JSONEq(t, `{"content":"hi"}`, string(got.Data))
	assert.Len(t, otherCh, 0)
}

func TestHubDropsWhenSubscriberIsSlow(t *testing.T) {
	hub := NewHub()
	_, ch, cancel := hub.Subscribe("notification:U1", 1)
	defer cancel()

	for i := 0; i < 3; i++ {
		hub.Dispatch(Event{Type: TypeNotificationCreated, Topic: "notification:U1"})
	}
	assert.Len(t, ch, 1)
}

func TestHubCancelClosesAndCleansUp(t *testing.T) {
	hub := NewHub()
	_, ch, cancel := hub.Subscribe("conversation:C1", 0)
	assert.Equal(t, 1, hub.Subscribers("conversation:C1"))

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Subscribers("conversation:C1"))

	// 取消后发布不会 panic
	hub.Dispatch(Event{Type: TypeMessageCreated, Topic: "conversation:C1"})
}

func TestSubscribeEmptyTopicReturnsClosedChannel(t *testing.T) {
	hub := NewHub()
	id, ch, cancel := hub.Subscribe("  ", 4)
	defer cancel()
	assert.Empty(t, id)
	_, ok := <-ch
	assert.False(t, ok)
}
