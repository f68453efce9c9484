package persistence

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/users-service/internal/config"
)

func TestMigrationFilesAreOrdered(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_b.sql": {Data: []byte("SELECT 2")},
		"0001_a.sql": {Data: []byte("SELECT 1")},
		"nested":     {Mode: fs.ModeDir | 0o755},
	}

	files, err := MigrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, files)
}

func TestEmbeddedMigrationsCoverPersonnelTables(t *testing.T) {
	files, err := MigrationFiles(Migrations())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_personnel.sql", "0002_callcentre.sql", "0003_error_logs.sql"}, files)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, Migrations(), zap.NewNop()))
}

func TestNewPostgresRequiresDSN(t *testing.T) {
	_, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingDSN)
}

func TestNewRedisDisabledWithoutAddr(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())
	assert.Nil(t, r)
	assert.Nil(t, r.Handle())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrRedisDisabled)
	r.Close()
}
