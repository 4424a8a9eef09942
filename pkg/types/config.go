// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

const (
	// DefaultEncoding is used when neither an explicit nor a system
	// encoding is configured.
	DefaultEncoding = "utf-8"

	// DefaultRetryAttempts bounds filesystem retries.
	DefaultRetryAttempts = 20

	// DefaultRetryDelay is the wait between filesystem retries.
	DefaultRetryDelay = 1 * time.Second
)

// RetryConfig holds the bound for retried directory operations.
type RetryConfig struct {
	// Attempts is the maximum number of success checks (default 20).
	Attempts int `json:"attempts" yaml:"attempts" mapstructure:"attempts"`

	// Delay is the wait between attempts (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay" mapstructure:"delay"`
}

// ConversionConfig holds settings for converting one archive.
type ConversionConfig struct {
	// ArchivePath is the exported zip file.
	ArchivePath string `json:"archive_path" yaml:"archive_path"`

	// Encoding is the output text encoding name (e.g. "utf-8", "windows-1252").
	Encoding string `json:"encoding" yaml:"encoding" mapstructure:"encoding"`

	// Frontmatter prepends a YAML block with the source file and creation
	// time to each output file.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter" mapstructure:"frontmatter"`

	Retry RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c ConversionConfig) WithDefaults() ConversionConfig {
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	if c.Retry.Attempts <= 0 {
		c.Retry.Attempts = DefaultRetryAttempts
	}
	if c.Retry.Delay <= 0 {
		c.Retry.Delay = DefaultRetryDelay
	}
	return c
}
