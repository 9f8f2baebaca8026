package migrations

import (
	"strings"
	"testing"

	"github.com/mentiq/mentiq/internal/platform/db"
)

func TestEmbeddedMigrationsLoad(t *testing.T) {
	migs, err := db.NewMigrator(nil, FS).LoadMigrations()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Errorf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}

	for _, table := range []string{
		"users", "doctors", "articles", "consultations", "appointments",
		"assessments", "chatbot_conversations", "saved_items", "motivation_streaks",
	} {
		if !strings.Contains(migs[0].SQL, "CREATE TABLE "+table+" (") {
			t.Errorf("core migration missing table %s", table)
		}
	}
	if strings.Count(migs[1].SQL, "'Dr. ") != 6 {
		t.Errorf("expected 6 seeded doctors")
	}
}
