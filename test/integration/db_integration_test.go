package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/croakcroak22/webhook/internal/storage/postgres"
)

var (
	testDB   *sql.DB
	testDSN  string
	testPort string
)

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	pool.MaxWait = 60 * time.Second

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	pg, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "17-alpine",
		Env: []string{
			"POSTGRES_USER=testuser",
			"POSTGRES_PASSWORD=testpass",
			"POSTGRES_DB=webhooks_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start postgres container: %s", err)
	}

	testPort = pg.GetPort("5432/tcp")
	testDSN = fmt.Sprintf(
		"host=localhost user=testuser password=testpass dbname=webhooks_test port=%s sslmode=disable TimeZone=UTC",
		testPort,
	)

	if err := pool.Retry(func() error {
		var err error
		testDB, err = sql.Open("postgres", testDSN)
		if err != nil {
			return err
		}

		testDB.SetMaxOpenConns(10)
		testDB.SetMaxIdleConns(5)
		testDB.SetConnMaxLifetime(5 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := testDB.PingContext(ctx); err != nil {
			testDB.Close()
			return err
		}

		if err := runMigrations(testDB); err != nil {
			log.Printf("Failed to run migrations: %v", err)
			testDB.Close()
			return err
		}

		return nil
	}); err != nil {
		log.Fatalf("Could not connect to postgres: %s", err)
	}

	os.Setenv("POSTGRES_USER", "testuser")
	os.Setenv("POSTGRES_PASSWORD", "testpass")
	os.Setenv("POSTGRES_DB", "webhooks_test")
	os.Setenv("POSTGRES_HOST", "localhost")
	os.Setenv("POSTGRES_PORT", testPort)
	os.Setenv("DB_MAX_RETRIES", "3")
	os.Setenv("DB_RETRY_DELAY", "100ms")
	os.Setenv("DB_LOG_LEVEL", "silent")

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}

	if err := pool.Purge(pg); err != nil {
		log.Fatalf("Could not purge postgres container: %s", err)
	}

	os.Exit(code)
}

func runMigrations(db *sql.DB) error {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	projectRoot := filepath.Join(testDir, "../..")
	migrationsDir := filepath.Join(projectRoot, "migrations")

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return fmt.Errorf("migrations directory does not exist: %s", migrationsDir)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	return nil
}

func testConfig() *postgres.Config {
	return &postgres.Config{
		User:       "testuser",
		Password:   "testpass",
		Host:       "localhost",
		Port:       testPort,
		Database:   "webhooks_test",
		MaxRetries: 3,
		RetryDelay: 100 * time.Millisecond,
		LogLevel:   logger.Silent,
	}
}

func TestConnectDB(t *testing.T) {
	t.Run("connects to the container database", func(t *testing.T) {
		db, err := postgres.ConnectDB(testConfig(), nil)
		require.NoError(t, err)

		sqlDB, err := db.DB()
		require.NoError(t, err)
		defer sqlDB.Close()

		assert.NoError(t, sqlDB.Ping())

		var dbName string
		require.NoError(t, db.Raw("SELECT current_database()").Scan(&dbName).Error)
		assert.Equal(t, "webhooks_test", dbName)

		stats := sqlDB.Stats()
		assert.Equal(t, 50, stats.MaxOpenConnections)
	})

	t.Run("loads configuration from environment when nil", func(t *testing.T) {
		db, err := postgres.ConnectDB(nil, nil)
		require.NoError(t, err)

		sqlDB, err := db.DB()
		require.NoError(t, err)
		defer sqlDB.Close()

		assert.NoError(t, sqlDB.Ping())
	})

	t.Run("fails fast with wrong credentials", func(t *testing.T) {
		cfg := testConfig()
		cfg.User = "nobody"
		cfg.Password = "wrong"
		cfg.MaxRetries = 1

		_, err := postgres.ConnectDB(cfg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database connection failed after 2 attempts")
	})
}

func TestMigrations_SchemaShape(t *testing.T) {
	var count int
	err := testDB.QueryRow(
		`SELECT COUNT(*) FROM information_schema.tables
		 WHERE table_schema = 'public' AND table_name IN ('webhooks', 'webhook_logs')`,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var indexCount int
	err = testDB.QueryRow(
		`SELECT COUNT(*) FROM pg_indexes
		 WHERE tablename = 'webhooks' AND indexname IN ('idx_webhooks_status', 'idx_webhooks_is_deleted')`,
	).Scan(&indexCount)
	require.NoError(t, err)
	assert.Equal(t, 2, indexCount)
}
