// Package data owns the persisted blob: the eight user settings plus the
// status overlay, the side table holding lifecycle status for diary entries
// whose list-item encoding has no metadata slot.
package data

import (
	"tableflip.dev/micropost/pkg/entry"
)

// Defaults mirrored by a fresh blob.
const (
	DefaultHeading    = "Posts"
	DefaultSingleFile = "micropost.md"
)

// Settings is the user-tunable half of the persisted blob.
type Settings struct {
	DefaultSource        entry.Source     `json:"defaultSource"`
	DefaultType          entry.Type       `json:"defaultType"`
	AutoFocus            bool             `json:"autoFocus"`
	DiaryHeading         string           `json:"diaryHeading"`
	SingleFilePath       string           `json:"singleFilePath"`
	DefaultLayout        entry.LayoutMode `json:"defaultLayout"`
	HideCompletedTasks   bool             `json:"hideCompletedTasks"`
	SidebarAlwaysVisible bool             `json:"sidebarAlwaysVisible"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultSource:        entry.SourceDiary,
		DefaultType:          entry.TypeList,
		AutoFocus:            true,
		DiaryHeading:         DefaultHeading,
		SingleFilePath:       DefaultSingleFile,
		DefaultLayout:        entry.LayoutList,
		HideCompletedTasks:   false,
		SidebarAlwaysVisible: true,
	}
}

// Meta is one overlay record. Its lifecycle is independent of the document
// line it describes; it survives hand edits to that line.
type Meta struct {
	Status    entry.Status    `json:"status"`
	UpdatedAt entry.Timestamp `json:"updatedAt"`
}

// Data is the whole persisted blob. It is read fully at startup and
// rewritten in full on every mutation.
type Data struct {
	Settings Settings        `json:"settings"`
	Entries  map[string]Meta `json:"entries"`
}

func New() *Data {
	return &Data{
		Settings: DefaultSettings(),
		Entries:  map[string]Meta{},
	}
}

// Status resolves the overlay status for id. No record means active.
func (d *Data) Status(id string) entry.Status {
	if m, ok := d.Entries[id]; ok {
		return m.Status
	}
	return entry.StatusActive
}

// Meta returns the overlay record for id, if one exists.
func (d *Data) Meta(id string) (Meta, bool) {
	m, ok := d.Entries[id]
	return m, ok
}

// SetStatus updates the overlay. Active is the default state, so setting it
// removes the record entirely; anything else upserts with the given time.
func (d *Data) SetStatus(id string, status entry.Status, at entry.Timestamp) {
	if status == entry.StatusActive {
		delete(d.Entries, id)
		return
	}
	d.Entries[id] = Meta{Status: status, UpdatedAt: at}
}

// Forget drops the overlay record for id, used when an entry is physically
// removed from its document.
func (d *Data) Forget(id string) {
	delete(d.Entries, id)
}
