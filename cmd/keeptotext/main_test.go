// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConversionConfig(t *testing.T) {
	env := func(k string) string {
		if k == "LANG" {
			return "de_DE.ISO-8859-15"
		}
		return ""
	}

	tests := []struct {
		name         string
		set          map[string]any
		wantEncoding string
	}{
		{"default utf-8", nil, "utf-8"},
		{"explicit encoding", map[string]any{"encoding": "cp1252"}, "cp1252"},
		{"system encoding", map[string]any{"system_encoding": true}, "ISO-8859-15"},
		{"explicit beats system", map[string]any{"encoding": "utf-16le", "system_encoding": true}, "utf-16le"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			cfg := conversionConfig(v, env)
			assert.Equal(t, tt.wantEncoding, cfg.Encoding)
			assert.Equal(t, 20, cfg.Retry.Attempts)
			assert.Equal(t, time.Second, cfg.Retry.Delay)
			assert.False(t, cfg.Frontmatter)
		})
	}
}

func TestConversionConfig_RetryAndFrontmatter(t *testing.T) {
	v := viper.New()
	v.Set("retry.attempts", 3)
	v.Set("retry.delay", "250ms")
	v.Set("frontmatter", true)

	cfg := conversionConfig(v, func(string) string { return "" })
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.Delay)
	assert.True(t, cfg.Frontmatter)
}
