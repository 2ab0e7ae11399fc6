package keepalive

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CleanupManager runs front-end teardown steps (TUI shutdown, log flush)
// once, in registration order, bounded by a timeout.
type CleanupManager struct {
	mu          sync.Mutex
	resources   []CleanupResource
	timeout     time.Duration
	log         *zap.Logger
	cleanupOnce sync.Once
	errs        []error
}

// CleanupResource is something that needs releasing at shutdown.
type CleanupResource interface {
	Cleanup() error
	Name() string
}

// CleanupFunc is a function-based cleanup resource.
type CleanupFunc struct {
	name string
	fn   func() error
}

func (c *CleanupFunc) Cleanup() error {
	return c.fn()
}

func (c *CleanupFunc) Name() string {
	return c.name
}

// NewCleanupManager creates a manager; a non-positive timeout means 5s.
func NewCleanupManager(timeout time.Duration, log *zap.Logger) *CleanupManager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CleanupManager{
		timeout: timeout,
		log:     log.Named("cleanup"),
	}
}

// Register adds a resource to be cleaned up.
func (cm *CleanupManager) Register(resource CleanupResource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function.
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	cm.Register(&CleanupFunc{name: name, fn: fn})
}

// Execute runs every registered cleanup. Later calls return the errors of
// the first one without running anything.
func (cm *CleanupManager) Execute() []error {
	cm.cleanupOnce.Do(func() {
		cm.errs = cm.executeWithTimeout()
	})
	return cm.errs
}

func (cm *CleanupManager) executeWithTimeout() []error {
	cm.mu.Lock()
	resources := make([]CleanupResource, len(cm.resources))
	copy(resources, cm.resources)
	cm.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	done := make(chan struct{})
	var cleanupErrors []error
	var mu sync.Mutex
	record := func(err error) {
		mu.Lock()
		cleanupErrors = append(cleanupErrors, err)
		mu.Unlock()
	}

	go func() {
		defer close(done)
		for _, resource := range resources {
			func() {
				defer func() {
					if r := recover(); r != nil {
						record(fmt.Errorf("panic during cleanup of %s: %v", resource.Name(), r))
						cm.log.Error("panic during cleanup", zap.String("resource", resource.Name()), zap.Any("panic", r))
					}
				}()

				if err := resource.Cleanup(); err != nil {
					record(fmt.Errorf("%s: %w", resource.Name(), err))
					cm.log.Warn("cleanup failed", zap.String("resource", resource.Name()), zap.Error(err))
					return
				}
				cm.log.Debug("cleaned up", zap.String("resource", resource.Name()))
			}()
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		cm.log.Warn("cleanup timeout exceeded; some resources may not have been released",
			zap.Duration("timeout", cm.timeout))
		record(errors.New("cleanup timeout exceeded"))
	}

	mu.Lock()
	defer mu.Unlock()
	out := make([]error, len(cleanupErrors))
	copy(out, cleanupErrors)
	return out
}

// Clear removes all registered resources without executing cleanup.
func (cm *CleanupManager) Clear() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = cm.resources[:0]
}
