package post

import (
	"context"
	"testing"

	"venturedeck/internal/dao/mysql/mysqltest"
	"venturedeck/internal/session"
	"venturedeck/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostLifecycle(t *testing.T) {
	svc := NewPostService(mysqltest.NewRepositories(t))
	ctx := context.Background()
	owner, other := session.New("U1"), session.New("U2")

	_, err := svc.Create(ctx, owner, "  ")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	first, err := svc.Create(ctx, owner, "Looking for a technical cofounder")
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner, "We closed our pre-seed")
	require.NoError(t, err)

	list, err := svc.List(ctx, other, "U1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.PostId, list[0].PostId, "newest first")

	assert.Equal(t, errorx.CodeForbidden, errorx.GetCode(svc.Delete(ctx, other, first.PostId)))
	require.NoError(t, svc.Delete(ctx, owner, first.PostId))
	assert.Equal(t, errorx.CodeNotFound, errorx.GetCode(svc.Delete(ctx, owner, first.PostId)))

	list, err = svc.List(ctx, owner, "U1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
