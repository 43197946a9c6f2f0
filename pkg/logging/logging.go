// Package logging defines the small structured-logging surface the engine
// uses for diagnostics: duplicate anchor drops, per-document parse
// failures, watcher noise.
package logging

import (
	"context"
	"log/slog"
)

// Logger is a context-aware structured logger. Args are key-value pairs:
//
//	log.Warn(ctx, "duplicate block id", "id", id, "path", path)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// Slog adapts a *slog.Logger to Logger.
type Slog struct {
	l *slog.Logger
}

func NewSlog(l *slog.Logger) *Slog {
	return &Slog{l: l}
}

// Default wraps slog's process-default logger.
func Default() *Slog {
	return &Slog{l: slog.Default()}
}

func (s *Slog) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *Slog) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *Slog) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *Slog) With(args ...any) Logger {
	return &Slog{l: s.l.With(args...)}
}

// Nop discards everything; useful in tests.
type Nop struct{}

func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }
