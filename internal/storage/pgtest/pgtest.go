// Package pgtest поднимает одноразовый PostgreSQL в контейнере для интеграционных тестов
// и накатывает на него миграции проекта.
package pgtest

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/sweet-shop/internal/migrations"
	"github.com/magabrotheeeer/sweet-shop/internal/storage/repository"
)

const pgPort = nat.Port("5432/tcp")

// MigrationsPath возвращает абсолютный путь к каталогу migrations в корне репозитория.
func MigrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

// NewStorage запускает контейнер postgres:15-alpine, применяет миграции и
// возвращает готовое хранилище. Контейнер останавливается через t.Cleanup.
// В режиме -short тест пропускается.
func NewStorage(t *testing.T) *repository.Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{string(pgPort)},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(pgPort),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, pgPort)
	require.NoError(t, err, "failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	var storage *repository.Storage
	for range 10 {
		storage, err = repository.New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")
	t.Cleanup(func() {
		_ = storage.Close()
	})

	require.NoError(t, migrations.Run(storage.DB, MigrationsPath()), "failed to apply migrations")
	return storage
}

// Truncate очищает все таблицы между подтестами.
func Truncate(t *testing.T, storage *repository.Storage) {
	t.Helper()
	_, err := storage.DB.Exec(`TRUNCATE purchases, sweets, users`)
	require.NoError(t, err)
}
