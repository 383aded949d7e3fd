package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbeddedAndOrdered(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "001_init.sql", migrations[0].Version)
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}

	for _, table := range []string{"customers", "entities", "entity_customers", "audit_logs"} {
		assert.True(t, strings.Contains(migrations[0].SQL, "CREATE TABLE IF NOT EXISTS "+table), table)
	}
}

func TestMigrations_GooseAnnotated(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)

	for _, m := range migrations {
		up := strings.Index(m.SQL, "-- +goose Up")
		down := strings.Index(m.SQL, "-- +goose Down")
		assert.GreaterOrEqual(t, up, 0, m.Version)
		assert.Greater(t, down, up, m.Version)
	}
}

func TestMigrations_EntityCustomersUniquePair(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)

	// assignments upsert with ON CONFLICT (entity_id, customer_id)
	assert.Contains(t, migrations[0].SQL, "UNIQUE (entity_id, customer_id)")
}
