package pgutil

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"

	"github.com/chainsafe/vrsc-identity/pkg/config"
)

const (
	testImage    = "postgres:15-alpine"
	testDatabase = "vrsc_identity_test"
	testUser     = "vrsc"
	testPassword = "vrsc"

	tableExistsQuery = "SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?)"
	indexExistsQuery = "SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE schemaname = 'public' AND indexname = ?)"
)

// StartTestDB runs a journal database in a postgres container for the
// duration of t and returns a connection plus the settings that reach it.
// Without a reachable docker daemon the test is skipped.
func StartTestDB(t *testing.T) (*bun.DB, config.DatabaseConfig) {
	t.Helper()
	if !dockerReachable() {
		t.Skip("docker daemon not reachable; skipping postgres test")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, testImage,
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start postgres container")

	host, err := container.Host(ctx)
	require.NoError(t, err, "postgres container host")
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err, "postgres container port")

	cfg := config.DatabaseConfig{
		Host:     host,
		Port:     port.Int(),
		User:     testUser,
		Password: testPassword,
		Database: testDatabase,
		SSLMode:  "disable",
	}

	// the port can accept connections a moment after the ready log line
	var db *bun.DB
	require.Eventually(t, func() bool {
		conn, err := ConnectDB(ctx, &cfg, nil)
		if err != nil {
			return false
		}
		db = conn
		return true
	}, 30*time.Second, 250*time.Millisecond, "connect to postgres container")
	t.Cleanup(func() { _ = db.Close() })

	return db, cfg
}

func dockerReachable() bool {
	for _, sock := range []string{
		"/var/run/docker.sock",
		filepath.Join(os.Getenv("HOME"), ".docker/run/docker.sock"),
	} {
		conn, err := (&net.Dialer{Timeout: time.Second}).Dial("unix", sock)
		if err == nil {
			_ = conn.Close()
			return true
		}
	}
	return false
}

// AssertTable checks whether table exists in the public schema.
func AssertTable(t *testing.T, db bun.IDB, table string, present bool) {
	t.Helper()
	assert.Equal(t, present, exists(t, db, tableExistsQuery, table), "table %s present", table)
}

// AssertIndex checks whether index exists in the public schema.
func AssertIndex(t *testing.T, db bun.IDB, index string, present bool) {
	t.Helper()
	assert.Equal(t, present, exists(t, db, indexExistsQuery, index), "index %s present", index)
}

func AssertRowCount(t *testing.T, db bun.IDB, table string, want int) {
	t.Helper()
	n, err := db.NewSelect().TableExpr("?", bun.Ident(table)).Count(context.Background())
	require.NoError(t, err, "count rows of %s", table)
	assert.Equal(t, want, n, "rows in %s", table)
}

func exists(t *testing.T, db bun.IDB, query, name string) bool {
	t.Helper()
	var ok bool
	require.NoError(t, db.NewRaw(query, name).Scan(context.Background(), &ok), "look up %s", name)
	return ok
}
