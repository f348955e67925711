package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTUIStateRoundTrip(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), ".treeline")}
	in := &TUIState{SelectedID: "node-a", ExpandedIDs: []string{"node-a", "node-b"}}
	if err := s.SaveTUIState(in); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}
	out, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if out.Version != 1 || out.SelectedID != "node-a" || len(out.ExpandedIDs) != 2 {
		t.Fatalf("loaded = %+v", out)
	}
}

func TestTUIStateMissingOrCorrupt(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), ".treeline")}
	st, err := s.LoadTUIState()
	if err != nil || st.Version != 1 || st.SelectedID != "" {
		t.Fatalf("missing file: %+v, %v", st, err)
	}

	if err := s.Ensure(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.tuiStatePath(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err = s.LoadTUIState()
	if err != nil || st.SelectedID != "" {
		t.Fatalf("corrupt file should read as fresh state: %+v, %v", st, err)
	}
}
