package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/daily"
	"tableflip.dev/micropost/pkg/data"
	"tableflip.dev/micropost/pkg/logging"
	"tableflip.dev/micropost/pkg/store"
	"tableflip.dev/micropost/pkg/vault"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	v, err := vault.NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	a := &app.Service{
		Vault: v,
		Daily: &daily.Notes{Vault: v, Dir: "daily", Now: fixedNow},
		Store: store.New(),
		Data:  data.New(),
		Blob:  data.NewStore(t.TempDir()),
		Log:   logging.Nop{},
		Now:   fixedNow,
	}
	return NewService(a)
}

func TestCreateAndGetEntry(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateEntry(ctx, CreateEntryOptions{Content: "hello #world"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Source != "diary" || dto.Status != "active" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if len(dto.Tags) != 1 || dto.Tags[0] != "#world" {
		t.Fatalf("tags not surfaced: %+v", dto.Tags)
	}

	got, err := svc.EntryByID(ctx, dto.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "hello #world" {
		t.Fatalf("round trip drifted: %+v", got)
	}
}

func TestCreateEntrySourceOverrideIsScoped(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateEntry(ctx, CreateEntryOptions{Content: "aside", Source: "single-file"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Source != "single-file" {
		t.Fatalf("override ignored: %+v", dto)
	}
	if svc.App.Data.Settings.DefaultSource != "diary" {
		t.Fatalf("override must not stick in settings")
	}
}

func TestListEntriesFiltered(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, content := range []string{"alpha #keep", "beta #keep", "gamma"} {
		if _, err := svc.CreateEntry(ctx, CreateEntryOptions{Content: content}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	out, err := svc.ListEntries(ctx, ListOptions{Tag: "keep"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 tagged entries, got %d", len(out))
	}

	out, err = svc.ListEntries(ctx, ListOptions{Search: "GAMMA"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].Content != "gamma" {
		t.Fatalf("search mismatch: %+v", out)
	}

	if _, err := svc.ListEntries(ctx, ListOptions{View: "bogus"}); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}

func TestSetStatusMovesBetweenViews(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateEntry(ctx, CreateEntryOptions{Content: "to trash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.SetStatus(ctx, dto.ID, "deleted")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != "deleted" {
		t.Fatalf("status not applied: %+v", updated)
	}

	active, err := svc.ListEntries(ctx, ListOptions{View: "active"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deleted entry still in active view")
	}
	trash, err := svc.ListEntries(ctx, ListOptions{View: "trash"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trash) != 1 {
		t.Fatalf("entry missing from trash view")
	}
}

func TestToggleTaskRejectsListEntries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateEntry(ctx, CreateEntryOptions{Content: "plain item"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ToggleTask(ctx, dto.ID); err == nil {
		t.Fatalf("expected error toggling a list entry")
	}

	task, err := svc.CreateEntry(ctx, CreateEntryOptions{Content: "real task", Task: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	toggled, err := svc.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.TaskCompleted {
		t.Fatalf("task not completed: %+v", toggled)
	}
}

func TestDeleteEntryNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.DeleteEntry(context.Background(), "mpnope")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
