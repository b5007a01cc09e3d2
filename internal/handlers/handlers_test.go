package handlers

import (
	"testing"
	"time"

	"github.com/branchapp/branch/internal/auth"
	"github.com/branchapp/branch/internal/directory"
	"github.com/branchapp/branch/internal/identity"
	"github.com/branchapp/branch/internal/messagelog"
	"github.com/branchapp/branch/internal/store/jsonstore"
	"github.com/rs/zerolog"
)

type testEnv struct {
	store     *jsonstore.JSONStore
	identity  *identity.Service
	directory *directory.Service
	log       *messagelog.Service
}

func newTestEnv(t *testing.T) *testEnv {
	store, err := jsonstore.New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	tokens := auth.NewManager("test-secret", time.Hour)
	return &testEnv{
		store:     store,
		identity:  identity.New(store, tokens),
		directory: directory.New(store),
		log:       messagelog.New(store, nil),
	}
}
