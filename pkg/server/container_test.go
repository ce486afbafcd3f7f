package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"profile-api/internal/config"
	"profile-api/internal/repositories"
	"profile-api/internal/services"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: "test",
		Port:        "0",
		LogLevel:    "warn",
		Database: config.DatabaseConfig{
			Driver:             repositories.DriverSQLite,
			ConnectionString:   filepath.Join(t.TempDir(), "container.db"),
			MaxOpenConns:       1,
			MaxIdleConns:       1,
			ConnMaxLifetime:    time.Hour,
			BusyTimeoutMS:      1000,
			AutoMigrate:        true,
			SlowQueryThreshold: time.Second,
		},
		HTTP: config.HTTPConfig{MaxBodyBytes: 1 << 20},
	}
}

func TestNewContainer(t *testing.T) {
	ctx := context.Background()

	container, err := NewContainer(ctx, testConfig(t))
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	defer container.Close()

	if container.ProfileService == nil {
		t.Fatal("ProfileService is nil")
	}
	if err := container.Database().CheckHealth(ctx); err != nil {
		t.Errorf("CheckHealth() error = %v", err)
	}

	age := 30
	_, err = container.ProfileService.CreateProfile(ctx, &services.CreateProfileRequest{
		FirstName: "Ana", LastName: "Lopez", Email: "ana@x.io", Age: &age,
	})
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	profiles, err := container.ProfileService.ListProfiles(ctx)
	if err != nil || len(profiles) != 1 {
		t.Errorf("ListProfiles() = %v, %v", profiles, err)
	}
}

func TestNewContainer_InvalidDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = repositories.DriverPostgres
	cfg.Database.ConnectionString = "postgres://%zz"

	if _, err := NewContainer(context.Background(), cfg); err == nil {
		t.Error("NewContainer() with a malformed DSN should fail")
	}
}

func TestContainer_CloseTwice(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}

	if err := container.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := container.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
