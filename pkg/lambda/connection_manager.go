package lambda

import (
	"context"
	"sync"
	"time"

	"profile-api/internal/config"
	"profile-api/pkg/server"
)

// staleAfter is how long an idle container is still reported healthy
const staleAfter = 5 * time.Minute

// ConnectionManager caches the service container across warm invocations.
// A failed initialization is not cached, so the next invocation retries.
type ConnectionManager struct {
	mu         sync.Mutex
	container  *server.Container
	lastUsed   time.Time
	loadConfig func() (*config.Config, error)
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(config.GetOptimizedConfig)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager that loads its configuration lazily
func NewConnectionManager(loadConfig func() (*config.Config, error)) *ConnectionManager {
	return &ConnectionManager{loadConfig: loadConfig}
}

// GetContainer returns the service container, initializing it if necessary
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		cm.lastUsed = time.Now()
		return cm.container, nil
	}

	cfg, err := cm.loadConfig()
	if err != nil {
		return nil, err
	}

	container, err := server.NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cm.container = container
	cm.lastUsed = time.Now()
	return container, nil
}

// IsHealthy reports whether a container exists and was used recently
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.container != nil && time.Since(cm.lastUsed) < staleAfter
}

// Cleanup closes the cached container. The next GetContainer builds a new one.
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	cm.container = nil
	return err
}
