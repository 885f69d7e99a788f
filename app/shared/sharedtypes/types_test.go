package sharedtypes

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestNewMatchID_IsTimeOrdered(t *testing.T) {
	prev := NewMatchID()
	if uuid.UUID(prev).Version() != 7 {
		t.Fatalf("match id version = %d, want 7", uuid.UUID(prev).Version())
	}

	for i := 0; i < 1000; i++ {
		next := NewMatchID()
		p, n := uuid.UUID(prev), uuid.UUID(next)
		if bytes.Compare(p[:], n[:]) >= 0 {
			t.Fatalf("ids not strictly increasing: %s then %s", prev, next)
		}
		prev = next
	}
}

func TestMatchID_RoundTripsThroughText(t *testing.T) {
	id := NewMatchID()

	text, err := id.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var parsed MatchID
	if err := parsed.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if parsed != id {
		t.Errorf("round trip changed id: %s != %s", parsed, id)
	}
}
