package repository

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDBUnknownBackend(t *testing.T) {
	if _, err := NewDB("mongo", "x"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if _, err := NewDB("postgres", ""); err == nil {
		t.Fatal("expected error for empty postgres dsn")
	}
}

func TestNewDBCreatesSQLiteDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.db")
	db, err := NewDB("sqlite", path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("expected db dir to exist: %v", err)
	}
}

func TestWithSQLiteDefaults(t *testing.T) {
	if got := withSQLiteDefaults("tasks.db"); got != "tasks.db?_busy_timeout=5000&_foreign_keys=on" {
		t.Errorf("unexpected dsn %q", got)
	}
	if got := withSQLiteDefaults("file:tasks.db?mode=ro"); got != "file:tasks.db?mode=ro" {
		t.Errorf("dsn with params should be kept, got %q", got)
	}
}

func TestStoreErrClassification(t *testing.T) {
	if err := storeErr("op", nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	err := storeErr("create category", errors.New("UNIQUE constraint failed: categories.name"))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	err = storeErr("list tasks", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	if !errors.Is(err, ErrConnectivity) {
		t.Errorf("expected ErrConnectivity, got %v", err)
	}
	err = storeErr("list tasks", errors.New("no such column: foo"))
	if errors.Is(err, ErrConnectivity) || errors.Is(err, ErrDuplicateKey) {
		t.Errorf("generic error should stay unclassified, got %v", err)
	}
	err = storeErr("delete category", ErrSentinelCategory)
	if !errors.Is(err, ErrSentinelCategory) {
		t.Errorf("expected ErrSentinelCategory to be kept, got %v", err)
	}
}
