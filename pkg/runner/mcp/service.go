// Package mcp provides the Model Context Protocol server integration for
// micropost.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/micropost/pkg/app"
	"tableflip.dev/micropost/pkg/entry"
	"tableflip.dev/micropost/pkg/markdown"
)

// Service coordinates engine-backed operations shared by the MCP server.
type Service struct {
	App *app.Service
}

// ErrEntryNotFound is returned when an entry cannot be located.
var ErrEntryNotFound = errors.New("entry not found")

// CreateEntryOptions captures the parameters used to create a new entry.
type CreateEntryOptions struct {
	Content string
	Task    bool
	Source  string
}

// ListOptions captures the view scope and filters for a list request.
type ListOptions struct {
	View          string
	Search        string
	Tag           string
	Quick         string
	HideCompleted bool
	Limit         int
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID            string   `json:"id"`
	Content       string   `json:"content"`
	Type          string   `json:"type"`
	Status        string   `json:"status"`
	Source        string   `json:"source"`
	FilePath      string   `json:"filePath"`
	TaskCompleted bool     `json:"taskCompleted"`
	Tags          []string `json:"tags,omitempty"`
	CreatedISO    string   `json:"created"`
	UpdatedISO    string   `json:"updated"`
	CreatedUnix   int64    `json:"createdUnix"`
}

// TagDTO is one row of the tag frequency aggregation.
type TagDTO struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// NewService builds a service wrapper over the engine.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ListEntries returns the filtered entry set for a view.
func (s *Service) ListEntries(ctx context.Context, opts ListOptions) ([]EntryDTO, error) {
	if s.App == nil {
		return nil, errors.New("engine is not configured")
	}

	view, err := parseView(opts.View)
	if err != nil {
		return nil, err
	}
	filter, err := parseFilter(opts)
	if err != nil {
		return nil, err
	}

	st := s.App.Store
	st.SetViewMode(view)
	st.SetFilter(filter)
	st.SetHideCompletedTasks(opts.HideCompleted)

	all := st.FilteredEntries()
	if opts.Limit > 0 && len(all) > opts.Limit {
		all = all[:opts.Limit]
	}

	out := make([]EntryDTO, 0, len(all))
	for _, e := range all {
		out = append(out, toDTO(e))
	}
	return out, nil
}

// ListTags returns the tag frequency table for a view.
func (s *Service) ListTags(ctx context.Context, view string) ([]TagDTO, error) {
	if s.App == nil {
		return nil, errors.New("engine is not configured")
	}
	v, err := parseView(view)
	if err != nil {
		return nil, err
	}
	s.App.Store.SetViewMode(v)

	tags := s.App.Store.Tags()
	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagDTO{Tag: t.Tag, Count: t.Count})
	}
	return out, nil
}

// CreateEntry appends a new entry to the requested or default source.
func (s *Service) CreateEntry(ctx context.Context, opts CreateEntryOptions) (*EntryDTO, error) {
	if s.App == nil {
		return nil, errors.New("engine is not configured")
	}
	if strings.TrimSpace(opts.Content) == "" {
		return nil, errors.New("content is required")
	}

	typ := entry.TypeList
	if opts.Task {
		typ = entry.TypeTask
	}

	if opts.Source != "" {
		src, err := parseSource(opts.Source)
		if err != nil {
			return nil, err
		}
		prev := s.App.Data.Settings.DefaultSource
		s.App.Data.Settings.DefaultSource = src
		defer func() { s.App.Data.Settings.DefaultSource = prev }()
	}

	e, err := s.App.SaveEntry(ctx, opts.Content, typ)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// UpdateContent replaces the content of an entry.
func (s *Service) UpdateContent(ctx context.Context, id, content string) (*EntryDTO, error) {
	e, err := s.findEntry(id)
	if err != nil {
		return nil, err
	}
	if err := s.App.EditEntry(ctx, e, content); err != nil {
		return nil, err
	}
	return s.EntryByID(ctx, id)
}

// SetStatus moves an entry between active, archived, and deleted.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*EntryDTO, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	e, err := s.findEntry(id)
	if err != nil {
		return nil, err
	}
	if err := s.App.ChangeStatus(ctx, e, st); err != nil {
		return nil, err
	}
	return s.EntryByID(ctx, id)
}

// ToggleTask flips a task entry's checkbox.
func (s *Service) ToggleTask(ctx context.Context, id string) (*EntryDTO, error) {
	e, err := s.findEntry(id)
	if err != nil {
		return nil, err
	}
	if e.Type != entry.TypeTask {
		return nil, fmt.Errorf("entry %q is not a task", id)
	}
	if err := s.App.ToggleTask(ctx, e); err != nil {
		return nil, err
	}
	return s.EntryByID(ctx, id)
}

// DeleteEntry removes an entry's physical encoding. This is permanent.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	e, err := s.findEntry(id)
	if err != nil {
		return err
	}
	return s.App.DeleteEntryPermanently(ctx, e)
}

// SearchEntries matches entries across every view by content substring.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 {
		limit = 20
	}

	q := strings.ToLower(query)
	var out []EntryDTO
	for _, e := range s.App.Store.Entries() {
		if !strings.Contains(strings.ToLower(e.Content), q) {
			continue
		}
		out = append(out, toDTO(e))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// EntryByID fetches a single entry.
func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	e, err := s.findEntry(id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

func (s *Service) findEntry(id string) (*entry.Entry, error) {
	if s.App == nil {
		return nil, errors.New("engine is not configured")
	}
	e, ok := s.App.Store.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return e, nil
}

func toDTO(e *entry.Entry) EntryDTO {
	return EntryDTO{
		ID:            e.ID,
		Content:       e.Content,
		Type:          string(e.Type),
		Status:        string(e.Status),
		Source:        string(e.Source),
		FilePath:      e.FilePath,
		TaskCompleted: e.TaskCompleted,
		Tags:          markdown.ExtractTags(e.Content),
		CreatedISO:    e.CreatedAt.String(),
		UpdatedISO:    e.UpdatedAt.String(),
		CreatedUnix:   e.CreatedAt.Unix(),
	}
}

func parseFilter(opts ListOptions) (entry.FilterState, error) {
	f := entry.FilterState{
		SearchQuery: opts.Search,
		Tag:         opts.Tag,
	}
	if f.Tag != "" && f.Tag[0] != '#' {
		f.Tag = "#" + f.Tag
	}
	switch opts.Quick {
	case "":
	case string(entry.FilterWithLink):
		f.QuickFilter = entry.FilterWithLink
	case string(entry.FilterNoTag):
		f.QuickFilter = entry.FilterNoTag
	case string(entry.FilterWithHyperlink):
		f.QuickFilter = entry.FilterWithHyperlink
	case string(entry.FilterWithImage):
		f.QuickFilter = entry.FilterWithImage
	default:
		return f, fmt.Errorf("unknown quick filter %q", opts.Quick)
	}
	return f, nil
}

func parseView(v string) (entry.ViewMode, error) {
	switch v {
	case "", string(entry.ViewActive):
		return entry.ViewActive, nil
	case string(entry.ViewArchive):
		return entry.ViewArchive, nil
	case string(entry.ViewTrash):
		return entry.ViewTrash, nil
	}
	return "", fmt.Errorf("unknown view %q", v)
}

func parseStatus(v string) (entry.Status, error) {
	switch v {
	case string(entry.StatusActive):
		return entry.StatusActive, nil
	case string(entry.StatusArchived):
		return entry.StatusArchived, nil
	case string(entry.StatusDeleted):
		return entry.StatusDeleted, nil
	}
	return "", fmt.Errorf("unknown status %q", v)
}

func parseSource(v string) (entry.Source, error) {
	switch v {
	case string(entry.SourceDiary):
		return entry.SourceDiary, nil
	case string(entry.SourceSingleFile):
		return entry.SourceSingleFile, nil
	}
	return "", fmt.Errorf("unknown source %q", v)
}
