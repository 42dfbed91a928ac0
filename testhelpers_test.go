//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	postgresmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shareloop/service-sharing/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// setupPostgres starts a PostgreSQL testcontainer and returns a
// connected GORM DB with the schema migrated.
func setupPostgres(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	container, err := postgresmodule.Run(ctx,
		"postgres:16-alpine",
		postgresmodule.WithDatabase("test_sharing"),
		postgresmodule.WithUsername("test"),
		postgresmodule.WithPassword("test"),
		postgresmodule.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_sharing sslmode=disable", host, port.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 60*time.Second, time.Second, "database never became reachable")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.ItemModel{},
		&repository.RequestModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))

	return &testInfra{
		DB: db,
		Cleanup: func() {
			_ = container.Terminate(ctx)
		},
	}
}

// truncateAll wipes every table between test cases.
func truncateAll(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Exec("TRUNCATE comments, bookings, items, requests, users RESTART IDENTITY CASCADE").Error
	require.NoError(t, err)
}
