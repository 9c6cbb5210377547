// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch harvests publication records from NASA data services and
// normalizes each source's schema into the canonical Publication shape.
// Each source (NTRS, Open Data, PubSpace) implements the Source
// interface per the Strategy pattern; a failing source never aborts the
// batch, it contributes whatever it retrieved plus an error.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/astrobio-engine/pkg/types"
)

// Source harvests records from a single NASA data service.
type Source interface {
	Name() string
	Fetch(ctx context.Context, query string, cfg types.FetchConfig) ([]types.Publication, error)
}

// Output holds the harvested records and per-source error messages.
// Records from sources that failed mid-batch are still included.
type Output struct {
	Records      []types.Publication
	SourceErrors []string
}

// All harvests from every source in order, pausing InterRequestDelay
// between sources to respect rate limits. Source failures are collected,
// not returned: the caller receives every record that was successfully
// retrieved alongside the error list.
func All(ctx context.Context, sources []Source, query string, cfg types.FetchConfig, w io.Writer) Output {
	var out Output

	for i, src := range sources {
		if i > 0 && cfg.InterRequestDelay > 0 {
			select {
			case <-ctx.Done():
				out.SourceErrors = append(out.SourceErrors, fmt.Sprintf("%s: %v", src.Name(), ctx.Err()))
				return out
			case <-time.After(cfg.InterRequestDelay):
			}
		}

		records, err := src.Fetch(ctx, query, cfg)
		out.Records = append(out.Records, records...)
		if err != nil {
			msg := fmt.Sprintf("%s: %v", src.Name(), err)
			out.SourceErrors = append(out.SourceErrors, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", src.Name(), err)
		}
	}

	return out
}

// NewClient builds an HTTP client with the configured timeout
// (default 30 s, matching the NASA service guidance).
func NewClient(cfg types.FetchConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
