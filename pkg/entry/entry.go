package entry

// Entry is the canonical unit: one timestamped micro-post embedded in a
// Markdown document. Entries are rebuilt on every parse pass; the physical
// document (plus the status overlay, for diary entries) stays authoritative.
type Entry struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	CreatedAt     Timestamp `json:"createdAt"`
	UpdatedAt     Timestamp `json:"updatedAt"`
	Type          Type      `json:"type"`
	TaskCompleted bool      `json:"taskCompleted"`
	Status        Status    `json:"status"`
	Source        Source    `json:"source"`
	FilePath      string    `json:"filePath"`
}

func New(id, content string, typ Type, source Source, filePath string, at Timestamp) *Entry {
	return &Entry{
		ID:        id,
		Content:   content,
		CreatedAt: at,
		UpdatedAt: at,
		Type:      typ,
		Status:    StatusActive,
		Source:    source,
		FilePath:  filePath,
	}
}

// Patch carries a partial update for Store.UpdateEntry. Nil fields are left
// untouched on the target entry.
type Patch struct {
	Content       *string
	UpdatedAt     *Timestamp
	Status        *Status
	TaskCompleted *bool
	FilePath      *string
}

// Apply merges the patch into e.
func (p Patch) Apply(e *Entry) {
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.UpdatedAt != nil {
		e.UpdatedAt = *p.UpdatedAt
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.TaskCompleted != nil {
		e.TaskCompleted = *p.TaskCompleted
	}
	if p.FilePath != nil {
		e.FilePath = *p.FilePath
	}
}
