package keepalive

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// CleanupManager releases resources on shutdown, newest first, within a
// timeout. Execute runs at most once.
type CleanupManager struct {
	mu          sync.Mutex
	resources   []CleanupResource
	timeout     time.Duration
	cleanupOnce sync.Once
	errs        []error
}

// CleanupResource represents a resource that needs cleanup
type CleanupResource interface {
	Cleanup() error
	Name() string
}

// CleanupFunc adapts a named function to CleanupResource
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

// NewCleanupManager creates a new cleanup manager with the specified timeout
func NewCleanupManager(timeout time.Duration) *CleanupManager {
	if timeout <= 0 {
		timeout = defaultStopTimeout
	}
	return &CleanupManager{timeout: timeout}
}

// Register adds a resource to be cleaned up
func (cm *CleanupManager) Register(resource CleanupResource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	cm.Register(&CleanupFunc{name: name, fn: fn})
}

// RegisterKeeper stops k on cleanup.
func (cm *CleanupManager) RegisterKeeper(k *Keeper) {
	cm.RegisterFunc("keeper", k.Stop)
}

// Execute cleans up every registered resource in reverse registration order.
// Later calls return the errors of the first.
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
		for i := len(resources) - 1; i >= 0; i-- {
			if ctx.Err() != nil {
				return
			}
			cleanupOne(resources[i], record)
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("cleanup: timeout after %v, some resources may not have been cleaned up", cm.timeout)
		record(errors.New("cleanup timeout exceeded"))
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]error(nil), cleanupErrors...)
}

func cleanupOne(resource CleanupResource, record func(error)) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("cleanup: panic cleaning up %s: %v", resource.Name(), r)
			record(fmt.Errorf("panic during cleanup of %s", resource.Name()))
		}
	}()

	if err := resource.Cleanup(); err != nil {
		log.Printf("cleanup: error cleaning up %s: %v", resource.Name(), err)
		record(fmt.Errorf("%s: %w", resource.Name(), err))
		return
	}
	log.Printf("cleanup: cleaned up %s", resource.Name())
}

// Clear removes all registered resources without executing cleanup
func (cm *CleanupManager) Clear() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = cm.resources[:0]
}
