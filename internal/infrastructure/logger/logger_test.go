package logger

import (
	"errors"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactQuery(t *testing.T) {
	assert.Equal(t, "conversation_id=C1&token=***", redactQuery("conversation_id=C1&token=abc.def"))
	assert.Equal(t, "user_id=U1", redactQuery("user_id=U1"))
}

func TestIsBrokenPipeError(t *testing.T) {
	err := &net.OpError{Op: "write", Err: os.NewSyscallError("write", errors.New("broken pipe"))}
	assert.True(t, isBrokenPipeError(err))
	assert.True(t, isBrokenPipeError(errors.New("read: connection reset by peer")))
	assert.False(t, isBrokenPipeError(errors.New("timeout")))
	assert.False(t, isBrokenPipeError(nil))
}
