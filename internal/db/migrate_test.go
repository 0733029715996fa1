package db

import (
	"io/fs"
	"strings"
	"testing"

	"formulator/internal/config"
)

func TestMigrateURL(t *testing.T) {
	cfg := &config.Config{DbUser: "u", DbPass: "p", DbHost: "h", DbPort: "5432", DbName: "cms", DbSSLMode: "disable"}
	got := migrateURL(cfg)
	if got != "pgx5://u:p@h:5432/cms?sslmode=disable" {
		t.Errorf("migrateURL = %q", got)
	}
}

func TestEmbeddedMigrationsPaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatal(err)
	}
	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	if len(ups) == 0 {
		t.Fatal("нет ни одной миграции")
	}
	for v := range ups {
		if !downs[v] {
			t.Errorf("у миграции %s нет down-файла", v)
		}
	}
}
