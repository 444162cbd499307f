package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	postgresImage = "postgres:16-alpine"
	testDBName    = "geoinfo_test"
	testDBUser    = "postgres"
	testDBPass    = "postgres"
)

// TestDB represents a test database connection
type TestDB struct {
	DB        *sqlx.DB
	Logger    *zap.Logger
	container testcontainers.Container
}

// SetupTestDB подключается к тестовой БД.
// Если задан TEST_DB_HOST, используется внешняя база, иначе поднимается контейнер Postgres.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	tdb := &TestDB{}
	connStr := externalDSN()
	if connStr == "" {
		container, dsn, err := startContainer(ctx)
		if err != nil {
			t.Fatalf("Failed to start postgres container: %v", err)
		}
		tdb.container = container
		connStr = dsn
	}

	// база в контейнере может принять соединение не сразу
	var db *sqlx.DB
	var err error
	retryDelay := 200 * time.Millisecond
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			break
		}
		t.Logf("Database not ready (attempt %d/10), waiting %v...", i+1, retryDelay)
		time.Sleep(retryDelay)
		retryDelay *= 2
	}
	if err != nil {
		tdb.Close()
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	tdb.DB = db
	tdb.Logger = zap.NewNop()
	return tdb
}

func startContainer(ctx context.Context) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       testDBName,
			"POSTGRES_USER":     testDBUser,
			"POSTGRES_PASSWORD": testDBPass,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		return nil, "", err
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		container.Terminate(ctx)
		return nil, "", err
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port.Port(), testDBUser, testDBPass, testDBName)
	return container, dsn, nil
}

func externalDSN() string {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		getEnv("TEST_DB_PORT", "5432"),
		getEnv("TEST_DB_USER", testDBUser),
		getEnv("TEST_DB_PASSWORD", testDBPass),
		getEnv("TEST_DB_NAME", testDBName),
		getEnv("TEST_DB_SSLMODE", "disable"),
	)
}

// Close closes the database connection and stops the container
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
	if tdb.container != nil {
		tdb.container.Terminate(context.Background())
	}
}

// Cleanup очищает таблицы с учётом внешних ключей
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	tables := []string{
		"country_currencies",
		"country_languages",
		"cities",
		"currencies",
		"languages",
		"countries",
	}

	for _, table := range tables {
		_, err := tdb.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			// таблицы может ещё не быть до применения миграций
			continue
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
