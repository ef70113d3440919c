package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Tomlord1122/task-manager/internal/config"
	"github.com/Tomlord1122/task-manager/internal/logger"
)

func TestPostgresContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tasks"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	svc, err := New(config.DatabaseConfig{URL: dsn, MaxOpenConns: 5, MaxIdleConns: 2}, logger.Discard(), true)
	require.NoError(t, err)
	defer svc.Close()

	require.NoError(t, svc.Migrate(ctx))
	assert.True(t, svc.GetDB().Migrator().HasTable("users"))
	assert.True(t, svc.GetDB().Migrator().HasTable("tasks"))

	stats := svc.Health()
	assert.Equal(t, "up", stats["status"])
}
