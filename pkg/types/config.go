package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "astrobio-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the harvesting stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRecords is the maximum number of records fetched per source (default 100).
	MaxRecords int `json:"max_records" yaml:"max_records"`

	// OpenDataKeywords are the search terms cycled through on the Open
	// Data portal. Defaults to the bioscience vocabulary.
	OpenDataKeywords []string `json:"open_data_keywords" yaml:"open_data_keywords"`

	// InterRequestDelay is the pause between successive keyword fetches
	// against the same portal, to respect rate limits (default 1s).
	InterRequestDelay time.Duration `json:"inter_request_delay" yaml:"inter_request_delay"`
}

// CatalogConfig holds settings for the publication catalog.
type CatalogConfig struct {
	// CatalogDir is the directory holding the SQLite database (default "catalog").
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default page size for searches (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AIConfig holds settings for the optional text-generation service.
type AIConfig struct {
	// Model is the generative model identifier (e.g. "gemini-1.5-pro").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key. When empty every enhancement
	// call takes the local fallback path.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}
