package keepalive

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCleanupManagerRunsInOrderOnce(t *testing.T) {
	cm := NewCleanupManager(time.Second, zaptest.NewLogger(t))
	var order []string
	cm.RegisterFunc("ui", func() error { order = append(order, "ui"); return nil })
	cm.RegisterFunc("logger", func() error { order = append(order, "logger"); return nil })

	assert.Empty(t, cm.Execute())
	assert.Empty(t, cm.Execute())
	assert.Equal(t, []string{"ui", "logger"}, order)
}

func TestCleanupManagerCollectsErrorsAndPanics(t *testing.T) {
	cm := NewCleanupManager(time.Second, nil)
	boom := errors.New("sync failed")
	ran := false
	cm.RegisterFunc("logger", func() error { return boom })
	cm.RegisterFunc("panicky", func() error { panic("oops") })
	cm.RegisterFunc("last", func() error { ran = true; return nil })

	errs := cm.Execute()
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], boom)
	assert.Contains(t, errs[1].Error(), "panic during cleanup of panicky")
	assert.True(t, ran, "a failing resource does not stop the rest")
}

func TestCleanupManagerTimeout(t *testing.T) {
	cm := NewCleanupManager(20*time.Millisecond, nil)
	release := make(chan struct{})
	defer close(release)
	cm.RegisterFunc("stuck", func() error { <-release; return nil })

	errs := cm.Execute()
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "cleanup timeout exceeded")
}

func TestCleanupManagerClear(t *testing.T) {
	cm := NewCleanupManager(0, nil)
	called := false
	cm.RegisterFunc("x", func() error { called = true; return nil })
	cm.Clear()

	assert.Empty(t, cm.Execute())
	assert.False(t, called)
}
