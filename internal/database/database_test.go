package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"profile-api/internal/models"
	"profile-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

func testConfig(t *testing.T) *repositories.Config {
	t.Helper()

	cfg := repositories.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "test.db")
	return cfg
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel) // Reduce noise in tests
	return logger
}

func TestBuildSQLiteDSN(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		config repositories.DatabaseConfig
		want   string
	}{
		{
			name: "all options",
			path: "/tmp/profiles.db",
			config: repositories.DatabaseConfig{
				JournalMode: "WAL",
				Synchronous: "NORMAL",
				ForeignKeys: true,
				BusyTimeout: 5000,
				TxLock:      "immediate",
			},
			want: "/tmp/profiles.db?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate",
		},
		{
			name:   "no options",
			path:   "/tmp/profiles.db",
			config: repositories.DatabaseConfig{},
			want:   "/tmp/profiles.db",
		},
		{
			name:   "existing query string",
			path:   "file:profiles.db?mode=memory",
			config: repositories.DatabaseConfig{BusyTimeout: 100},
			want:   "file:profiles.db?mode=memory&_busy_timeout=100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSQLiteDSN(tt.path, tt.config); got != tt.want {
				t.Errorf("BuildSQLiteDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnectionFactory_CreateSQLiteConnection(t *testing.T) {
	cfg := testConfig(t)
	factory := NewConnectionFactory(testLogger())

	db, err := factory.CreateConnection(context.Background(), cfg)
	if err != nil {
		t.Fatalf("CreateConnection() failed: %v", err)
	}
	defer closeDB(db)

	if _, err := os.Stat(filepath.Dir(cfg.Database.Path)); err != nil {
		t.Errorf("expected database directory to be created: %v", err)
	}

	var fk int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil {
		t.Fatalf("PRAGMA foreign_keys failed: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestConnectionFactory_InvalidConfig(t *testing.T) {
	factory := NewConnectionFactory(testLogger())

	tests := []struct {
		name   string
		modify func(c *repositories.Config)
	}{
		{name: "unsupported driver", modify: func(c *repositories.Config) { c.Database.Driver = "oracle" }},
		{name: "missing path", modify: func(c *repositories.Config) { c.Database.Path = "" }},
		{
			name: "malformed postgres dsn",
			modify: func(c *repositories.Config) {
				c.Database.Driver = repositories.DriverPostgres
				c.Database.DSN = "postgres://%zz"
			},
		},
		{
			name: "malformed mysql dsn",
			modify: func(c *repositories.Config) {
				c.Database.Driver = repositories.DriverMySQL
				c.Database.DSN = "not a dsn"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.modify(cfg)
			if _, err := factory.CreateConnection(context.Background(), cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	factory := NewConnectionFactory(testLogger())

	db, err := factory.CreateConnection(ctx, testConfig(t))
	if err != nil {
		t.Fatalf("CreateConnection() failed: %v", err)
	}
	defer closeDB(db)

	status, err := SchemaStatus(ctx, db)
	if err != nil {
		t.Fatalf("SchemaStatus() failed: %v", err)
	}
	if status["profiles"] {
		t.Fatal("profiles table should not exist before EnsureSchema")
	}

	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, db, testLogger()); err != nil {
			t.Fatalf("EnsureSchema() run %d failed: %v", i+1, err)
		}
	}

	status, err = SchemaStatus(ctx, db)
	if err != nil {
		t.Fatalf("SchemaStatus() failed: %v", err)
	}
	if !status["profiles"] {
		t.Error("profiles table should exist after EnsureSchema")
	}

	if !db.Migrator().HasIndex(&models.Profile{}, "idx_profiles_email") {
		t.Error("expected unique email index to exist")
	}
}

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(testConfig(t), testLogger())

	if manager.IsConnected() {
		t.Fatal("manager should start disconnected")
	}
	if status := manager.GetHealthStatus(ctx); status.Healthy {
		t.Error("disconnected manager should report unhealthy")
	}

	if err := manager.Connect(ctx); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	if err := manager.Connect(ctx); err == nil {
		t.Error("second Connect() should fail")
	}

	if manager.GetDB() == nil {
		t.Fatal("GetDB() returned nil after Connect")
	}
	if !manager.GetDB().Migrator().HasTable("profiles") {
		t.Error("auto-migrate should create the profiles table")
	}

	if err := manager.CheckHealth(ctx); err != nil {
		t.Errorf("CheckHealth() failed: %v", err)
	}

	status := manager.GetHealthStatus(ctx)
	if !status.Healthy {
		t.Errorf("expected healthy status, got %q", status.Message)
	}
	if status.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", status.Driver)
	}

	if err := manager.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if manager.GetDB() != nil {
		t.Error("GetDB() should return nil after Close")
	}
	if err := manager.CheckHealth(ctx); err == nil {
		t.Error("CheckHealth() should fail after Close")
	}
}

func TestGormLogger_SlowQuery(t *testing.T) {
	var buf strings.Builder
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	gl := NewGormLogger(logger, repositories.QueryConfig{SlowQueryThreshold: time.Millisecond})
	gl.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM profiles", 0
	}, nil)

	if !strings.Contains(buf.String(), "Slow query detected") {
		t.Errorf("expected slow query warning, got %q", buf.String())
	}

	buf.Reset()
	gl.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
	if buf.Len() != 0 {
		t.Errorf("fast query should not be logged without query logging, got %q", buf.String())
	}
}
