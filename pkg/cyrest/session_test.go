package cyrest

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestSessionStateBasics(t *testing.T) {
	s := NewSessionState()

	if _, ok := s.Default(KindNetwork); ok {
		t.Error("fresh state should have no defaults")
	}

	s.SetCurrent(KindNetwork, "52")
	if id, ok := s.Default(KindNetwork); !ok || id != "52" {
		t.Errorf("Default = (%q, %v)", id, ok)
	}

	s.Clear(KindNetwork)
	if _, ok := s.Default(KindNetwork); ok {
		t.Error("Clear should remove the default")
	}
}

func TestSessionStateLastWriterWins(t *testing.T) {
	s := NewSessionState()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.SetCurrent(KindNetwork, ID(rune('a'+n%26)))
		}(i)
	}
	wg.Wait()

	// Whatever won, the snapshot is fully formed.
	if _, ok := s.Default(KindNetwork); !ok {
		t.Error("some writer must have won")
	}
}

func TestSessionStateSnapshotIsolation(t *testing.T) {
	s := NewSessionState()
	s.SetCurrent(KindNetwork, "52")

	snap := s.Snapshot()
	s.SetCurrent(KindNetwork, "104")

	if snap[KindNetwork] != "52" {
		t.Error("snapshot must not see later writes")
	}
}

func TestSessionStateReset(t *testing.T) {
	s := NewSessionState()
	s.SetCurrent(KindNetwork, "52")
	s.SetCurrent(KindView, "130223")
	s.SetCurrent(KindStyle, "Minimal")

	s.Reset()
	for _, kind := range []StateKind{KindNetwork, KindView, KindStyle} {
		if _, ok := s.Default(kind); ok {
			t.Errorf("Reset should clear %s", kind)
		}
	}
}

func TestStateFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	f, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("NewStateFile: %v", err)
	}

	s := NewSessionState()
	s.SetCurrent(KindNetwork, "52")
	s.SetCurrent(KindStyle, "Minimal")
	if err := f.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := NewSessionState()
	if err := f.Load(restored); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if id, ok := restored.Default(KindNetwork); !ok || id != "52" {
		t.Errorf("restored network = (%q, %v)", id, ok)
	}
	if id, ok := restored.Default(KindStyle); !ok || id != "Minimal" {
		t.Errorf("restored style = (%q, %v)", id, ok)
	}
}

func TestStateFileMissingIsNotError(t *testing.T) {
	f, err := NewStateFile(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("NewStateFile: %v", err)
	}
	s := NewSessionState()
	if err := f.Load(s); err != nil {
		t.Errorf("Load of missing file: %v", err)
	}
}

func TestStateFileDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	f, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("NewStateFile: %v", err)
	}
	s := NewSessionState()
	s.SetCurrent(KindNetwork, "52")
	if err := f.Save(s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := f.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Deleting again is fine.
	if err := f.Delete(); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}
