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
	postgresOnce sync.Once
	postgresDSN  string
	postgresErr  error
)

// GetPostgresDSN returns a DSN for a PostgreSQL container shared by every test
// in the package. Tests are skipped in -short mode or when the container
// cannot be started (e.g. Docker not available).
func GetPostgresDSN(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Postgres container test in -short mode")
	}

	postgresOnce.Do(func() {
		postgresDSN, postgresErr = startPostgresContainer()
	})

	if postgresErr != nil {
		t.Skipf("skipping Postgres tests: %v", postgresErr)
	}
	return postgresDSN
}

func startPostgresContainer() (dsn string, err error) {
	// Give generous timeout in CI environments
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	// Guard against Testcontainers panicking (e.g. no Docker socket).
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("starting Postgres testcontainer panicked: %v", r)
		}
	}()

	postgresC, err := testcontainers.Run(
		ctx, "postgres:16",
		testcontainers.WithExposedPorts("5432/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				// Postgres restarts once after initdb; wait for the second ready line.
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2*time.Minute),
		),
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_USER":     "flowlight",
			"POSTGRES_PASSWORD": "flowlight",
			"POSTGRES_DB":       "flowlight_test",
		}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start Postgres testcontainer: %w", err)
	}

	endpoint, err := postgresC.Endpoint(ctx, "")
	if err != nil {
		_ = postgresC.Terminate(context.Background())
		return "", fmt.Errorf("failed to get Postgres endpoint: %w", err)
	}

	return fmt.Sprintf("postgres://flowlight:flowlight@%s/flowlight_test?sslmode=disable", endpoint), nil
}
