package game

import (
	"regexp"
	"testing"
)

func TestRegistryCreateAndDuplicate(t *testing.T) {
	reg := NewRegistry(Options{Emitter: &recordingEmitter{}})
	if _, err := reg.Create("AAAA11", "host"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := reg.Create("AAAA11", "other"); err != ErrRoomExists {
		t.Fatalf("expected ErrRoomExists, got %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 room, got %d", reg.Len())
	}
}

func TestRegistryGetRemove(t *testing.T) {
	reg := NewRegistry(Options{Emitter: &recordingEmitter{}})
	if _, ok := reg.Get("NOPE00"); ok {
		t.Fatal("lookup of unknown room should miss")
	}
	room, err := reg.Create("BBBB22", "host")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, ok := reg.Get("BBBB22")
	if !ok || got != room {
		t.Fatal("lookup should return the created room")
	}
	reg.Remove("BBBB22")
	if _, ok := reg.Get("BBBB22"); ok {
		t.Fatal("room should be gone after removal")
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", reg.Len())
	}
}

func TestRegistryDefaults(t *testing.T) {
	reg := NewRegistry(Options{Emitter: &recordingEmitter{}})
	room, err := reg.Create("CCCC33", "host")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s := room.Settings()
	if s.TotalRounds != 3 || s.TimePerRound != 60 {
		t.Fatalf("unexpected default settings: %+v", s)
	}
}

func TestNewCodeFormat(t *testing.T) {
	reg := NewRegistry(Options{Emitter: &recordingEmitter{}})
	re := regexp.MustCompile(`^[0-9A-F]{6}$`)
	for i := 0; i < 100; i++ {
		code := reg.NewCode()
		if !re.MatchString(code) {
			t.Fatalf("bad join code %q", code)
		}
	}
}
