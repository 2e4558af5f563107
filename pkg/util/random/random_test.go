package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUuidShape(t *testing.T) {
	id := NewUuid("U")
	assert.True(t, strings.HasPrefix(id, "U"))
	// 1 位前缀 + 6 位日期 + 11 位随机
	assert.Len(t, id, 18)
	assert.NotEqual(t, id, NewUuid("U"))
}

func TestGetSecureToken(t *testing.T) {
	tok, err := GetSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, tok, 32)
}
