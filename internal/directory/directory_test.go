package directory

import (
	"errors"
	"testing"

	"github.com/branchapp/branch/internal/store/jsonstore"
	"github.com/rs/zerolog"
)

func newTestService(t *testing.T) *Service {
	store, err := jsonstore.New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return New(store)
}

func TestFindOrCreateIsOrderIndependent(t *testing.T) {
	svc := newTestService(t)

	first, created, err := svc.FindOrCreate("alice", "bob")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if !created {
		t.Error("Expected first call to create the conversation")
	}

	// Reversed order must resolve to the same record
	second, created, err := svc.FindOrCreate("bob", "alice")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if created {
		t.Error("Expected second call to find the existing conversation")
	}
	if second.ID != first.ID {
		t.Errorf("Expected same conversation, got %s and %s", first.ID, second.ID)
	}
}

func TestFindOrCreateNormalizesParticipants(t *testing.T) {
	svc := newTestService(t)

	conv, _, err := svc.FindOrCreate("zoe", "adam")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if conv.Participants[0] != "adam" || conv.Participants[1] != "zoe" {
		t.Errorf("Expected lexicographically sorted participants, got %v", conv.Participants)
	}
	if conv.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestFindOrCreateInvalidParticipants(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		a, b string
	}{
		{"", "bob"},
		{"alice", ""},
		{"alice", "alice"},
	}
	for _, c := range cases {
		if _, _, err := svc.FindOrCreate(c.a, c.b); !errors.Is(err, ErrInvalidParticipants) {
			t.Errorf("FindOrCreate(%q, %q): expected ErrInvalidParticipants, got %v", c.a, c.b, err)
		}
	}
}

func TestListFor(t *testing.T) {
	svc := newTestService(t)

	svc.FindOrCreate("alice", "bob")
	svc.FindOrCreate("alice", "carol")
	svc.FindOrCreate("bob", "carol")

	convs, err := svc.ListFor("alice")
	if err != nil {
		t.Fatalf("ListFor failed: %v", err)
	}
	if len(convs) != 2 {
		t.Errorf("Expected 2 conversations for alice, got %d", len(convs))
	}

	convs, err = svc.ListFor("nobody")
	if err != nil {
		t.Fatalf("ListFor failed: %v", err)
	}
	if len(convs) != 0 {
		t.Errorf("Expected no conversations, got %d", len(convs))
	}
}
