package repository_test

import (
	"testing"
	"time"

	"venturedeck/internal/dao/mysql/mysqltest"
	"venturedeck/internal/dao/mysql/repository"
	"venturedeck/internal/model"
	"venturedeck/pkg/enum/contact_request/contact_request_status_enum"
	"venturedeck/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest(uuid, sender, receiver string) *model.ContactRequest {
	return &model.ContactRequest{
		Uuid:       uuid,
		SenderId:   sender,
		ReceiverId: receiver,
		Status:     contact_request_status_enum.PENDING,
		ActiveKey:  model.PendingKey(sender, receiver),
	}
}

func TestProfileCompletenessComputedOnSave(t *testing.T) {
	repos := mysqltest.NewRepositories(t)

	p := &model.Profile{Uuid: "U1", Email: "a@x.io", RawPassword: "secret123"}
	require.NoError(t, repos.Profile.Create(p))
	assert.False(t, p.IsComplete)
	assert.True(t, p.CheckPassword("secret123"))

	p.FullName, p.Bio, p.StartupVision, p.Skills, p.CofounderType = "Ada", "bio", "vision", "go", "Technical"
	require.NoError(t, repos.Profile.Save(p))

	complete, err := repos.Profile.FindComplete()
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, "U1", complete[0].Uuid)
}

func TestProfileEmailUnique(t *testing.T) {
	repos := mysqltest.NewRepositories(t)

	require.NoError(t, repos.Profile.Create(&model.Profile{Uuid: "U1", Email: "a@x.io", RawPassword: "pw123456"}))
	err := repos.Profile.Create(&model.Profile{Uuid: "U2", Email: "a@x.io", RawPassword: "pw123456"})
	assert.True(t, errorx.IsConflict(err))

	_, err = repos.Profile.FindByUuid("missing")
	assert.True(t, errorx.IsNotFound(err))
}

func TestOnlyOnePendingRequestPerPair(t *testing.T) {
	repos := mysqltest.NewRepositories(t)

	require.NoError(t, repos.ContactRequest.Create(pendingRequest("R1", "U1", "U2")))
	err := repos.ContactRequest.Create(pendingRequest("R2", "U1", "U2"))
	assert.True(t, errorx.IsConflict(err))

	// 反方向是另一对
	require.NoError(t, repos.ContactRequest.Create(pendingRequest("R3", "U2", "U1")))
}

func TestTransitionReleasesActiveKey(t *testing.T) {
	repos := mysqltest.NewRepositories(t)
	now := time.Now()

	require.NoError(t, repos.ContactRequest.Create(pendingRequest("R1", "U1", "U2")))
	require.NoError(t, repos.ContactRequest.TransitionFromPending("R1", contact_request_status_enum.IGNORED, now))
	require.NoError(t, repos.ContactRequest.SoftDelete("R1"))

	// 第二次流转失败
	err := repos.ContactRequest.TransitionFromPending("R1", contact_request_status_enum.ACCEPTED, now)
	assert.True(t, errorx.IsConflict(err))

	// 唯一键已释放，可以再次发送
	require.NoError(t, repos.ContactRequest.Create(pendingRequest("R2", "U1", "U2")))
}

func TestVisibleOutgoingRespectsRetention(t *testing.T) {
	repos := mysqltest.NewRepositories(t)
	ignoredAt := time.Now().Add(-48 * time.Hour)

	require.NoError(t, repos.ContactRequest.Create(pendingRequest("R1", "U1", "U2")))
	require.NoError(t, repos.ContactRequest.TransitionFromPending("R1", contact_request_status_enum.IGNORED, ignoredAt))
	require.NoError(t, repos.ContactRequest.SoftDelete("R1"))

	// 接收方看不到
	incoming, err := repos.ContactRequest.FindPendingByReceiver("U2")
	require.NoError(t, err)
	assert.Empty(t, incoming)

	// 保留期内发送方仍能看到
	req, err := repos.ContactRequest.FindVisibleOutgoing("U1", "U2", ignoredAt.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, contact_request_status_enum.IGNORED, req.Status)

	// 超过保留期
	_, err = repos.ContactRequest.FindVisibleOutgoing("U1", "U2", ignoredAt.Add(time.Hour))
	assert.True(t, errorx.IsNotFound(err))

	n, err := repos.ContactRequest.PurgeIgnoredBefore(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDeleteBetweenClearsBothDirections(t *testing.T) {
	repos := mysqltest.NewRepositories(t)
	now := time.Now()

	require.NoError(t, repos.ContactRequest.Create(pendingRequest("R1", "U1", "U2")))
	require.NoError(t, repos.ContactRequest.TransitionFromPending("R1", contact_request_status_enum.IGNORED, now))
	require.NoError(t, repos.ContactRequest.SoftDelete("R1"))
	require.NoError(t, repos.ContactRequest.Create(pendingRequest("R2", "U2", "U1")))
	require.NoError(t, repos.ContactRequest.Create(pendingRequest("R3", "U1", "U2")))
	require.NoError(t, repos.ContactRequest.Create(pendingRequest("R4", "U1", "U3")))

	n, err := repos.ContactRequest.DeleteBetween("U1", "U2", "R3")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repos.ContactRequest.FindVisibleOutgoing("U1", "U2", now.Add(-time.Hour))
	require.NoError(t, err) // R3 保留
	_, err = repos.ContactRequest.FindVisibleOutgoing("U2", "U1", now.Add(-time.Hour))
	assert.True(t, errorx.IsNotFound(err))
	_, err = repos.ContactRequest.FindByUuid("R4")
	require.NoError(t, err)
}

func TestContactPairCreateAndDelete(t *testing.T) {
	repos := mysqltest.NewRepositories(t)

	require.NoError(t, repos.Contact.CreatePair("U1", "U2"))
	assert.True(t, errorx.IsConflict(repos.Contact.CreatePair("U2", "U1")))

	ok, err := repos.Contact.Exists("U2", "U1")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := repos.Contact.DeletePair("U2", "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ids, err := repos.Contact.FindContactIds("U1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestConversationPairUnique(t *testing.T) {
	repos := mysqltest.NewRepositories(t)

	require.NoError(t, repos.Conversation.Create(&model.Conversation{Uuid: "C1", Participant1: "U1", Participant2: "U2"}))
	err := repos.Conversation.Create(&model.Conversation{Uuid: "C2", Participant1: "U1", Participant2: "U2"})
	assert.True(t, errorx.IsConflict(err))

	require.NoError(t, repos.Conversation.Create(&model.Conversation{Uuid: "C3", Participant1: "U1", Participant2: "U3"}))
	require.NoError(t, repos.Conversation.UpdatePreview("C3", "hi", time.Now()))

	convs, err := repos.Conversation.FindByParticipant("U1")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "C3", convs[0].Uuid)
}

func TestMessagesOrderAndUnread(t *testing.T) {
	repos := mysqltest.NewRepositories(t)
	base := time.Now()

	for i, sender := range []string{"U1", "U2", "U2"} {
		require.NoError(t, repos.Message.Create(&model.Message{
			Uuid:           int64(100 + i),
			ConversationId: "C1",
			SenderId:       sender,
			Content:        "m",
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}))
	}

	msgs, err := repos.Message.FindByConversation("C1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, int64(100), msgs[0].Uuid)

	counts, err := repos.Message.CountUnread([]string{"C1"}, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["C1"])

	n, err := repos.Message.MarkRead("C1", "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestTransactionRollsBack(t *testing.T) {
	repos := mysqltest.NewRepositories(t)

	err := repos.Transaction(func(tx *repository.Repositories) error {
		require.NoError(t, tx.Contact.CreatePair("U1", "U2"))
		return errorx.New(errorx.CodeConflict, "abort")
	})
	require.Error(t, err)

	ok, err := repos.Contact.Exists("U1", "U2")
	require.NoError(t, err)
	assert.False(t, ok)
}
