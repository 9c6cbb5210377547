// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enhance layers optional AI assistance over the catalog:
// summaries, question answering, and research-gap analysis. Every
// operation has a deterministic local implementation, so the AI backend
// is strictly additive and its failures never surface to callers.
package enhance

import (
	"context"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

// Enhancer abstracts the generative backend so tests can supply a mock.
type Enhancer interface {
	// Available reports whether the backend can serve requests. Callers
	// probe this before dispatching; an unavailable backend is skipped
	// without error.
	Available(ctx context.Context) bool

	// Summarize produces a prose summary of one publication.
	Summarize(ctx context.Context, pub types.Publication) (string, error)

	// Chat answers a free-form question grounded on the supplied
	// publications.
	Chat(ctx context.Context, question string, pubs []types.Publication) (string, error)

	// AnalyzeGaps reviews catalog-wide aggregates and describes
	// under-researched areas.
	AnalyzeGaps(ctx context.Context, stats catalog.Stats) (string, error)
}

// Result carries an enhancement answer plus which backend produced it.
type Result struct {
	Text    string `json:"text"`
	Backend string `json:"backend"`
}

// Service dispatches to the AI backend when it is available and falls
// back to the local backend on any unavailability or error. Service
// methods never fail: the local backend is total.
type Service struct {
	AI    Enhancer
	Local *Local
}

// NewService wires a service around an optional AI backend. Passing a
// nil ai means local-only operation.
func NewService(ai Enhancer) *Service {
	return &Service{AI: ai, Local: &Local{}}
}

func (s *Service) local() *Local {
	if s.Local == nil {
		s.Local = &Local{}
	}
	return s.Local
}

// Summarize returns a summary of the publication, preferring the AI
// backend.
func (s *Service) Summarize(ctx context.Context, pub types.Publication) Result {
	if s.AI != nil && s.AI.Available(ctx) {
		if text, err := s.AI.Summarize(ctx, pub); err == nil {
			return Result{Text: text, Backend: s.backendName()}
		}
	}
	text, _ := s.local().Summarize(ctx, pub)
	return Result{Text: text, Backend: localBackendName}
}

// Chat answers a question against the supplied publication context.
func (s *Service) Chat(ctx context.Context, question string, pubs []types.Publication) Result {
	if s.AI != nil && s.AI.Available(ctx) {
		if text, err := s.AI.Chat(ctx, question, pubs); err == nil {
			return Result{Text: text, Backend: s.backendName()}
		}
	}
	text, _ := s.local().Chat(ctx, question, pubs)
	return Result{Text: text, Backend: localBackendName}
}

// AnalyzeGaps describes under-researched areas of the catalog.
func (s *Service) AnalyzeGaps(ctx context.Context, stats catalog.Stats) Result {
	if s.AI != nil && s.AI.Available(ctx) {
		if text, err := s.AI.AnalyzeGaps(ctx, stats); err == nil {
			return Result{Text: text, Backend: s.backendName()}
		}
	}
	text, _ := s.local().AnalyzeGaps(ctx, stats)
	return Result{Text: text, Backend: localBackendName}
}

func (s *Service) backendName() string {
	if named, ok := s.AI.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "ai"
}
