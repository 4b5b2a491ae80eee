package internal

import (
	"errors"
	"fmt"
)

var (
	ErrNilSession        = errors.New("session is nil")
	ErrMissingSessionID  = errors.New("session has no id")
	ErrInvalidSessionID  = errors.New("session id is not a valid file name")
	ErrSessionNotFound   = errors.New("session not found")
	ErrEmptySelection    = errors.New("no sessions selected")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// StoreError represents errors reading the conversation store
type StoreError struct {
	Path string
	Op   string // "open", "read", "parse", "write"
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ParseError represents a malformed stored record
type ParseError struct {
	Source string // "sqlite", "archive", "import"
	Key    string // storage key or file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ScoringError represents a failure while scoring a single session
type ScoringError struct {
	SessionID string
	Err       error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring error [%s]: %v", e.SessionID, e.Err)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

// ExportError represents a failed bulk export
type ExportError struct {
	Format   string
	Filename string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Filename, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
