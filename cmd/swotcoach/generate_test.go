package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Abdudhi100/swot-coach/internal/config"
	"github.com/Abdudhi100/swot-coach/internal/db"
	"github.com/Abdudhi100/swot-coach/internal/models"
)

// writeTestConfig writes a sqlite config into a temp dir and returns its path
// and the database path.
func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "swotcoach.db")
	cfgPath := filepath.Join(dir, "swotcoach.yaml")
	yaml := fmt.Sprintf("database:\n  driver: sqlite\n  path: %s\n", dbPath)
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, dbPath
}

func TestGenerateCmd_EndToEnd(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)

	// Prepare schema and one daily item.
	gormDB, err := db.Connect(config.DatabaseConfig{Driver: "sqlite", Path: dbPath})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	user, err := db.SeedUser(gormDB, "alice@example.com")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	item := models.SWOTItem{
		OwnerID:     user.ID,
		Category:    models.CategoryStrength,
		Description: "Exercise",
		Frequency:   models.FrequencyDaily,
		Active:      true,
		CreatedAt:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := gormDB.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"generate", "--config", cfgPath, "--date", "2024-01-05"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate command failed: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "Generated 1 tasks for 2024-01-05") {
		t.Errorf("output = %q, want it to report 1 task for 2024-01-05", got)
	}

	// Rerun is idempotent.
	cmd = newRootCmd()
	buf.Reset()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"generate", "--config", cfgPath, "--date", "2024-01-05"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate rerun failed: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "Generated 0 tasks for 2024-01-05") {
		t.Errorf("rerun output = %q, want 0 tasks", got)
	}
}

func TestGenerateCmd_BadDate(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"generate", "--config", cfgPath, "--date", "05-01-2024"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for bad --date")
	}
}

func TestDBInitCmd_SeedsUser(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"db", "init", "--config", cfgPath, "--email", "alice@example.com"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "initialized successfully") {
		t.Errorf("output = %q, want success message", got)
	}

	gormDB, err := db.Connect(config.DatabaseConfig{Driver: "sqlite", Path: dbPath})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	var n int64
	if err := gormDB.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&n).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestDBResetCmd_RequiresConfirmation(t *testing.T) {
	cfgPath, dbPath := writeTestConfig(t)

	// Init first so there is something to reset.
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"db", "init", "--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("db init failed: %v", err)
	}

	// Declining the prompt leaves the database alone.
	cmd = newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader("no\n"))
	cmd.SetArgs([]string{"db", "reset", "--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("db reset failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Aborted") {
		t.Errorf("output = %q, want abort message", buf.String())
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file missing after aborted reset: %v", err)
	}

	// --yes skips the prompt and re-creates the schema.
	cmd = newRootCmd()
	buf.Reset()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"db", "reset", "--config", cfgPath, "--yes"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("db reset --yes failed: %v", err)
	}
	if !strings.Contains(buf.String(), "reset successfully") {
		t.Errorf("output = %q, want success message", buf.String())
	}
}
