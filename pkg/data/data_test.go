package data

import (
	"testing"
	"time"

	"tableflip.dev/micropost/pkg/entry"
)

func ts(h int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC)}
}

func TestStatusDefaultsToActive(t *testing.T) {
	d := New()
	if got := d.Status("mpab12"); got != entry.StatusActive {
		t.Fatalf("expected active for unknown id, got %s", got)
	}
}

func TestSetStatusActiveDeletesRecord(t *testing.T) {
	d := New()
	d.SetStatus("mpab12", entry.StatusArchived, ts(9))
	if got := d.Status("mpab12"); got != entry.StatusArchived {
		t.Fatalf("expected archived, got %s", got)
	}

	d.SetStatus("mpab12", entry.StatusActive, ts(10))
	if _, ok := d.Meta("mpab12"); ok {
		t.Fatalf("active status should remove the overlay record")
	}
	if got := d.Status("mpab12"); got != entry.StatusActive {
		t.Fatalf("expected active after reset, got %s", got)
	}
}

func TestSetStatusUpsertsTimestamp(t *testing.T) {
	d := New()
	d.SetStatus("mpab12", entry.StatusDeleted, ts(9))
	d.SetStatus("mpab12", entry.StatusArchived, ts(11))

	m, ok := d.Meta("mpab12")
	if !ok {
		t.Fatalf("expected overlay record")
	}
	if m.Status != entry.StatusArchived || m.UpdatedAt.Hour() != 11 {
		t.Fatalf("record not refreshed: %+v", m)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	d, err := s.Load()
	if err != nil {
		t.Fatalf("load fresh: %v", err)
	}
	if d.Settings.DiaryHeading != DefaultHeading {
		t.Fatalf("fresh blob missing defaults: %+v", d.Settings)
	}

	d.Settings.DiaryHeading = "Journal"
	d.SetStatus("mpab12", entry.StatusArchived, ts(9))
	if err := s.Save(d); err != nil {
		t.Fatalf("save: %v", err)
	}

	back, err := s.Load()
	if err != nil {
		t.Fatalf("load saved: %v", err)
	}
	if back.Settings.DiaryHeading != "Journal" {
		t.Fatalf("settings did not persist: %+v", back.Settings)
	}
	if back.Status("mpab12") != entry.StatusArchived {
		t.Fatalf("overlay did not persist")
	}
	// Options absent from the persisted blob keep their defaults.
	if back.Settings.SingleFilePath != DefaultSingleFile {
		t.Fatalf("defaults not layered: %+v", back.Settings)
	}
}
