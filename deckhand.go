// Package deckhand edits PowerPoint (.pptx) packages: slide and shape
// assembly through a high-level session API, and slide transition
// effects compiled straight into each slide's markup.
//
// All editing happens through a Session with an explicit lifecycle:
// open or create, mutate, save. Nothing is ambient; a Session owns its
// package exclusively and assumes a single writer, operations applied
// strictly in call order.
package deckhand

import (
	"fmt"
	"log/slog"

	"github.com/arlevan/deckhand/internal/logging"
	"github.com/arlevan/deckhand/internal/pptx"
)

// Version is the release version reported by the CLI and the MCP server.
const Version = "0.2.0"

// ErrNoSavePath is returned by Save when the session was created in
// memory and no target path was given.
var ErrNoSavePath = fmt.Errorf("no save path: session has no file and none was provided")

// Session is one open presentation document.
type Session struct {
	logger *slog.Logger
	pkg    *pptx.Package
	path   string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New creates a session over a fresh, empty presentation.
func New(opts ...Option) (*Session, error) {
	pkg, err := pptx.New()
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}
	s := &Session{logger: logging.NewNop(), pkg: pkg}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Debug("session created")
	return s, nil
}

// Open creates a session over an existing .pptx file.
func Open(path string, opts ...Option) (*Session, error) {
	pkg, err := pptx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open presentation: %w", err)
	}
	s := &Session{logger: logging.NewNop(), pkg: pkg, path: path}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Debug("session opened", "path", path, "slides", pkg.SlideCount())
	return s, nil
}

// Path returns the file the session was opened from or last saved to,
// "" for an unsaved in-memory deck.
func (s *Session) Path() string { return s.path }

// SlideCount returns the number of slides.
func (s *Session) SlideCount() int { return s.pkg.SlideCount() }

// Save writes the package. An empty path reuses the session's current
// file; the resolved path is returned and becomes the session's file.
func (s *Session) Save(path string) (string, error) {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return "", ErrNoSavePath
	}
	if err := s.pkg.SaveFile(path); err != nil {
		return "", fmt.Errorf("save presentation: %w", err)
	}
	s.path = path
	s.logger.Info("presentation saved", "path", path, "slides", s.pkg.SlideCount())
	return path, nil
}

// Info summarizes the open document.
type Info struct {
	Path       string      `json:"path,omitempty"`
	SlideCount int         `json:"slide_count"`
	Slides     []SlideInfo `json:"slides"`
}

// SlideInfo summarizes one slide.
type SlideInfo struct {
	Index      int    `json:"index"`
	ShapeCount int    `json:"shape_count"`
	Transition string `json:"transition,omitempty"`
}

// Info reports the document summary used by get_presentation_info and
// the inspect command.
func (s *Session) Info() Info {
	info := Info{Path: s.path, SlideCount: s.pkg.SlideCount()}
	for i, sl := range s.pkg.Slides() {
		si := SlideInfo{Index: i}
		if shapes, err := sl.Shapes(); err == nil {
			si.ShapeCount = len(shapes)
		}
		if spec, ok := s.slideTransition(sl); ok {
			si.Transition = string(spec.Style)
		}
		info.Slides = append(info.Slides, si)
	}
	return info
}
