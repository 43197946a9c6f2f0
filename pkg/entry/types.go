package entry

// Type classifies an entry's body: a checkbox task or a plain list item.
type Type string

const (
	TypeTask Type = "task"
	TypeList Type = "list"
)

// Status is the tri-state lifecycle flag. Setting StatusDeleted moves an
// entry to the trash; it is recoverable until physically removed.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusDeleted  Status = "deleted"
)

// Source names which codec owns an entry's physical encoding.
type Source string

const (
	SourceDiary      Source = "diary"
	SourceSingleFile Source = "single-file"
)

// ViewMode is one of the three status-scoped perspectives a view renders.
type ViewMode string

const (
	ViewActive  ViewMode = "active"
	ViewArchive ViewMode = "archive"
	ViewTrash   ViewMode = "trash"
)

// Status returns the entry status a view mode displays.
func (m ViewMode) Status() Status {
	switch m {
	case ViewArchive:
		return StatusArchived
	case ViewTrash:
		return StatusDeleted
	default:
		return StatusActive
	}
}

// LayoutMode selects how a client lays entries out.
type LayoutMode string

const (
	LayoutList LayoutMode = "list"
	LayoutChat LayoutMode = "chat"
)

// QuickFilter is a single content-shape predicate layered on top of search
// and tag filters. At most one is active at a time.
type QuickFilter string

const (
	FilterWithLink      QuickFilter = "with-link"
	FilterNoTag         QuickFilter = "no-tag"
	FilterWithHyperlink QuickFilter = "with-hyperlink"
	FilterWithImage     QuickFilter = "with-image"
)

// FilterState is the composable filter a store applies, AND-combined.
// Zero values mean "no constraint".
type FilterState struct {
	SearchQuery string
	Tag         string
	QuickFilter QuickFilter
}
