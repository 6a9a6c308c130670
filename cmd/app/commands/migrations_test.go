package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationsPath(t *testing.T) {
	require.Equal(t, "file://migrations/postgresql", migrationsPath("postgres"))
	require.Equal(t, "file://migrations/mysql", migrationsPath("mysql"))
	require.Equal(t, "file://migrations/postgresql", migrationsPath(""))
}
