package jsonstore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/branchapp/branch/internal/models"
	"github.com/branchapp/branch/internal/store"
)

func TestCollectionCreatesEmptyFile(t *testing.T) {
	SetupTestStore(t)

	for _, name := range []string{"users.json", "conversations.json", "messages.json"} {
		data, err := os.ReadFile(filepath.Join(testDir, name))
		if err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
			continue
		}
		if string(bytes.TrimSpace(data)) != "[]" {
			t.Errorf("Expected %s to hold an empty array, got %q", name, data)
		}
	}
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	SetupTestStore(t)

	if err := os.WriteFile(filepath.Join(testDir, "users.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Reads see an empty collection instead of failing the request
	_, err := testStore.GetUserByUsername("anyone")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from corrupt store, got %v", err)
	}

	// The next write recovers the file
	if err := testStore.CreateUser(&models.User{ID: "1", Username: "alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("CreateUser on corrupt store failed: %v", err)
	}
	user, err := testStore.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("Expected store to recover after write: %v", err)
	}
	if user.ID != "1" {
		t.Errorf("Expected recovered user ID '1', got '%s'", user.ID)
	}
}

func TestSaveIsPrettyPrinted(t *testing.T) {
	SetupTestStore(t)

	testStore.CreateUser(&models.User{ID: "1", Username: "alice", PasswordHash: "h"})

	data, err := os.ReadFile(filepath.Join(testDir, "users.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("\n  ")) {
		t.Error("Expected indented JSON output")
	}
}
