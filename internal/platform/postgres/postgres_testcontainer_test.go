//go:build testcontainers

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer starts a PostgreSQL container and returns its
// connection URL.
func setupPostgresContainer(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "docker.io/library/postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "slim",
			"POSTGRES_PASSWORD": "slim",
			"POSTGRES_DB":       "slim",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://slim:slim@%s:%s/slim?sslmode=disable", host, port.Port())
}

func TestReadinessCheckAgainstPostgres(t *testing.T) {
	db, err := Open(setupPostgresContainer(t), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Ping(context.Background(), db, 5*time.Second))

	ready, details := ReadinessCheck(db, true).Ready(context.Background())
	assert.True(t, ready)
	assert.Contains(t, details, "latency_ms")
	assert.GreaterOrEqual(t, details["open_connections"], 1)
}
