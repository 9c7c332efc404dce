package report

import "testing"

func TestLookup_Known(t *testing.T) {
	info, ok := Lookup("vessel-name")
	if !ok {
		t.Fatal("expected vessel-name to be in the taxonomy")
	}
	if info.Section != "Vessel and Pilot Details" || info.Label != "Vessel Name" {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, ok := Lookup("made-up-field"); ok {
		t.Error("expected unknown field to miss")
	}
}

func TestLabel_FallsBackToIdentifier(t *testing.T) {
	if got := Label("workload"); got != "Workload" {
		t.Errorf("Label(workload) = %q", got)
	}
	if got := Label("custom-notes"); got != "custom-notes" {
		t.Errorf("expected raw identifier fallback, got %q", got)
	}
}

func TestFields_CoversCatalog(t *testing.T) {
	fields := Fields()
	if len(fields) != 22 {
		t.Errorf("expected 22 fields, got %d", len(fields))
	}
	for _, f := range fields {
		if _, ok := Lookup(f); !ok {
			t.Errorf("Fields returned %q but Lookup misses it", f)
		}
	}
}
