package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_ArePaired(t *testing.T) {
	entries, err := fs.ReadDir(MigrationFiles, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Fatalf("unexpected embedded file %q", name)
		}
	}
	require.Equal(t, ups, downs)
}

func TestMigrationFiles_CreateEncountersTable(t *testing.T) {
	raw, err := fs.ReadFile(MigrationFiles, "000001_create_encounters_table.up.sql")
	require.NoError(t, err)

	sql := string(raw)
	require.Contains(t, sql, "CREATE TABLE IF NOT EXISTS encounters")
	for _, column := range []string{"id", "ingest_seq", "recorded_at", "ingested_at", "skill_count", "agent_count", "document"} {
		require.Contains(t, sql, column)
	}
}
