package conversation

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"venturedeck/internal/dao/mysql/mysqltest"
	"venturedeck/internal/dao/mysql/repository"
	"venturedeck/internal/dto/request"
	ws "venturedeck/internal/gateway/websocket"
	"venturedeck/internal/session"
	"venturedeck/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*Service, *repository.Repositories, *ws.Hub) {
	repos := mysqltest.NewRepositories(t)
	mysqltest.CreateProfile(t, repos, "U1", "u1@example.com", true)
	mysqltest.CreateProfile(t, repos, "U2", "u2@example.com", true)
	mysqltest.CreateProfile(t, repos, "U3", "u3@example.com", true)
	hub := ws.NewHub()
	return NewConversationService(repos, hub), repos, hub
}

func TestCanonicalPairIsOrderIndependent(t *testing.T) {
	a1, b1, err := CanonicalPair("u1", "u2")
	require.NoError(t, err)
	a2, b2, err := CanonicalPair("u2", "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", a1)
	assert.Equal(t, "u2", b1)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)

	_, _, err = CanonicalPair("u1", "u1")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	_, _, err = CanonicalPair("", "u1")
	assert.Error(t, err)
}

func TestOpenReturnsSameConversationFromBothSides(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	c1, err := svc.Open(ctx, session.New("U1"), "U2")
	require.NoError(t, err)
	c2, err := svc.Open(ctx, session.New("U2"), "U1")
	require.NoError(t, err)

	assert.Equal(t, c1.ConversationId, c2.ConversationId)
	assert.Equal(t, "U2", c1.Peer.UserId)
	assert.Equal(t, "U1", c2.Peer.UserId)

	_, err = svc.Open(ctx, session.New("U1"), "U1")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	_, err = svc.Open(ctx, session.New("U1"), "U404")
	assert.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
}

func TestConcurrentOpenCreatesOneRow(t *testing.T) {
	svc, repos, _ := newService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			me, peer := "U1", "U2"
			if i%2 == 1 {
				me, peer = peer, me
			}
			c, err := svc.Open(ctx, session.New(me), peer)
			if assert.NoError(t, err) {
				ids[i] = c.ConversationId
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	convs, err := repos.Conversation.FindByParticipant("U1")
	require.NoError(t, err)
	assert.Len(t, convs, 1)
}

func TestSendListAndMarkRead(t *testing.T) {
	svc, _, hub := newService(t)
	ctx := context.Background()
	u1, u2 := session.New("U1"), session.New("U2")

	conv, err := svc.Open(ctx, u1, "U2")
	require.NoError(t, err)
	_, events, cancel := hub.Subscribe(ws.ConversationTopic(conv.ConversationId), 8)
	defer cancel()

	_, err = svc.Send(ctx, u1, request.SendMessageRequest{ConversationId: conv.ConversationId, Content: "hi"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, u1, request.SendMessageRequest{ConversationId: conv.ConversationId, Content: "are you around?"})
	require.NoError(t, err)

	select {
	case e := <-events:
		assert.Equal(t, ws.TypeMessageCreated, e.Type)
	case <-time.After(time.Second):
		t.Fatal("message event not delivered")
	}

	inbox, err := svc.List(ctx, u2)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, int64(2), inbox[0].UnreadCount)
	assert.Equal(t, "are you around?", inbox[0].LastMessage)
	assert.NotNil(t, inbox[0].LastMessageAt)
	assert.Equal(t, "U1", inbox[0].Peer.UserId)

	msgs, err := svc.Messages(ctx, u2, conv.ConversationId)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, "are you around?", msgs[1].Content)

	inbox, err = svc.List(ctx, u2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inbox[0].UnreadCount)

	rsp, err := svc.MarkRead(ctx, u2, conv.ConversationId)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rsp.Count)
}

func TestNonParticipantIsForbidden(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	conv, err := svc.Open(ctx, session.New("U1"), "U2")
	require.NoError(t, err)
	outsider := session.New("U3")

	_, err = svc.Messages(ctx, outsider, conv.ConversationId)
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	_, err = svc.Send(ctx, outsider, request.SendMessageRequest{ConversationId: conv.ConversationId, Content: "x"})
	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(err))
	_, err = svc.Authorize(ctx, outsider, "C_missing")
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestSendRejectsBlankContent(t *testing.T) {
	svc, _, _ := newService(t)
	conv, err := svc.Open(context.Background(), session.New("U1"), "U2")
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), session.New("U1"), request.SendMessageRequest{ConversationId: conv.ConversationId, Content: "   "})
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestPreviewTruncates(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
	long := strings.Repeat("创", previewLength+5)
	got := preview(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, previewLength+3, len([]rune(got)))
}
