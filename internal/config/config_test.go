package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DEDUPE_SELECTION", "GENERATION_WORKERS", "ENHANCE_TIMEOUT_SECONDS", "GEMINI_API_KEY", "AUTH_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.False(t, cfg.DedupeSelection, "duplicate ids are enumerated unless deduplication is enabled")
	assert.Equal(t, 1, cfg.GenerationWorkers)
	assert.Equal(t, 30*time.Second, cfg.EnhanceTimeout)
	assert.False(t, cfg.EnhancementEnabled())
	assert.False(t, cfg.AuthEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DEDUPE_SELECTION", "true")
	t.Setenv("GENERATION_WORKERS", "4")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg := Load()
	assert.True(t, cfg.DedupeSelection)
	assert.Equal(t, 4, cfg.GenerationWorkers)
	assert.True(t, cfg.EnhancementEnabled())
}

func TestGetEnvAsInt_RejectsNonPositive(t *testing.T) {
	t.Setenv("GENERATION_WORKERS", "0")
	assert.Equal(t, 1, getEnvAsInt("GENERATION_WORKERS", 1))
	t.Setenv("GENERATION_WORKERS", "abc")
	assert.Equal(t, 1, getEnvAsInt("GENERATION_WORKERS", 1))
}
