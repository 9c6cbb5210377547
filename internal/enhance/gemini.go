// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/pdiddy/astrobio-engine/internal/catalog"
	"github.com/pdiddy/astrobio-engine/internal/httputil"
	"github.com/pdiddy/astrobio-engine/pkg/types"
)

// geminiAPIBase is the Gemini API root. Package-level var for test
// substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// DefaultGeminiModel is used when the config names no model.
const DefaultGeminiModel = "gemini-2.0-flash"

// summarizePromptTmpl asks for a short prose summary of one publication.
var summarizePromptTmpl = template.Must(template.New("summarize").Parse(`You are a NASA bioscience research assistant. Summarize the following publication in 3-4 sentences for a scientifically literate reader. Focus on what was studied, how, and what was found. Do not invent details that are not in the text.

Title: {{.Title}}
{{- if .Year}}
Year: {{.Year}}{{end}}
{{- if .OrganismType}}
Organism: {{.OrganismType}}{{end}}
{{- if .ResearchDomain}}
Domain: {{.ResearchDomain}}{{end}}

Abstract:
{{.Abstract}}
`))

// chatPromptTmpl grounds a free-form question on catalog records.
var chatPromptTmpl = template.Must(template.New("chat").Parse(`You are a NASA bioscience research assistant. Answer the question using only the publications listed below. Cite publications by title. If the publications do not contain the answer, say so plainly.

Question: {{.Question}}

Publications:
{{range .Pubs}}- {{.Title}}{{if .Year}} ({{.Year}}){{end}}: {{.Abstract}}
{{end}}`))

// gapPromptTmpl asks for a research-gap narrative over catalog aggregates.
var gapPromptTmpl = template.Must(template.New("gaps").Parse(`You are a NASA bioscience research strategist. The catalog below aggregates {{.Total}} publications. Identify 2-4 under-researched areas and explain briefly why each gap matters for long-duration spaceflight.

Publications by research domain:
{{range .Domains}}- {{.Label}}: {{.Count}}
{{end}}
Publications by organism type:
{{range .Organisms}}- {{.Label}}: {{.Count}}
{{end}}`))

// Gemini calls the Gemini generateContent API. It implements Enhancer;
// availability is probed once and cached for the life of the value.
type Gemini struct {
	APIKey     string
	Model      string
	Client     *http.Client
	MaxRetries int

	probeOnce sync.Once
	probeOK   bool
}

// NewGemini builds a backend from config, or nil when no API key is
// configured so the caller falls back to local-only operation.
func NewGemini(cfg types.AIConfig) *Gemini {
	if cfg.APIKey == "" {
		return nil
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{APIKey: cfg.APIKey, Model: model, MaxRetries: cfg.MaxRetries}
}

// Name returns the backend identifier.
func (g *Gemini) Name() string { return "gemini" }

// Available reports whether the configured model answers a metadata
// request. The probe runs once; later calls reuse the cached verdict.
func (g *Gemini) Available(ctx context.Context) bool {
	g.probeOnce.Do(func() {
		if g.APIKey == "" {
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/models/%s?key=%s", geminiAPIBase, g.Model, g.APIKey), nil)
		if err != nil {
			return
		}
		resp, err := httputil.DoWithRetry(ctx, g.client(), req, g.MaxRetries)
		if err != nil {
			return
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)
		g.probeOK = resp.StatusCode == http.StatusOK
	})
	return g.probeOK
}

// Summarize renders the summary prompt and calls the model.
func (g *Gemini) Summarize(ctx context.Context, pub types.Publication) (string, error) {
	prompt, err := renderTemplate(summarizePromptTmpl, pub)
	if err != nil {
		return "", fmt.Errorf("rendering summary prompt: %w", err)
	}
	return g.generate(ctx, prompt)
}

// Chat renders the grounded question prompt and calls the model.
func (g *Gemini) Chat(ctx context.Context, question string, pubs []types.Publication) (string, error) {
	prompt, err := renderTemplate(chatPromptTmpl, struct {
		Question string
		Pubs     []types.Publication
	}{question, pubs})
	if err != nil {
		return "", fmt.Errorf("rendering chat prompt: %w", err)
	}
	return g.generate(ctx, prompt)
}

// AnalyzeGaps renders the aggregate prompt and calls the model.
func (g *Gemini) AnalyzeGaps(ctx context.Context, stats catalog.Stats) (string, error) {
	prompt, err := renderTemplate(gapPromptTmpl, struct {
		Total     int
		Domains   []labelCount
		Organisms []labelCount
	}{stats.TotalPublications, sortedCounts(stats.ByDomain), sortedCounts(stats.ByOrganism)})
	if err != nil {
		return "", fmt.Errorf("rendering gap prompt: %w", err)
	}
	return g.generate(ctx, prompt)
}

// Gemini API JSON structures.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

// generate posts one prompt to the generateContent endpoint and returns
// the first text part of the first candidate.
func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", geminiAPIBase, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, string(raw))
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decoding Gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}

	text := strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("Gemini API returned empty text")
	}
	return text, nil
}

func (g *Gemini) client() *http.Client {
	if g.Client != nil {
		return g.Client
	}
	return http.DefaultClient
}

type labelCount struct {
	Label string
	Count int
}

func sortedCounts(counts map[string]int) []labelCount {
	out := make([]labelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, labelCount{label, count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
