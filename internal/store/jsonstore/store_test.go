package jsonstore

import (
	"testing"

	"github.com/rs/zerolog"
)

var (
	testStore *JSONStore
	testDir   string
)

func SetupTestStore(t *testing.T) {
	testDir = t.TempDir()
	var err error
	testStore, err = New(testDir, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
}
