package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	redisOnce sync.Once
	redisAddr string
	redisErr  error
)

// GetRedisAddress returns the host:port of a Redis container shared by every
// test in the package. Tests are skipped in -short mode or when the container
// cannot be started.
func GetRedisAddress(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Redis container test in -short mode")
	}

	redisOnce.Do(func() {
		redisAddr, redisErr = startRedisContainer()
	})

	if redisErr != nil {
		t.Skipf("skipping Redis tests: %v", redisErr)
	}
	return redisAddr
}

func startRedisContainer() (addr string, err error) {
	// Give generous timeout in CI environments
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("starting Redis testcontainer panicked: %v", r)
		}
	}()

	redisC, err := testcontainers.Run(
		ctx, "redis:7",
		testcontainers.WithExposedPorts("6379/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("6379/tcp"),
			wait.ForLog("Ready to accept connections"),
		),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start Redis testcontainer: %w", err)
	}

	endpoint, err := redisC.Endpoint(ctx, "")
	if err != nil {
		_ = redisC.Terminate(context.Background())
		return "", fmt.Errorf("failed to get Redis endpoint: %w", err)
	}
	return endpoint, nil
}
