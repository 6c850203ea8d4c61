package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "crime.json", cfg.Input)
	assert.Equal(t, "CrimeTest.html", cfg.Output)

	cats, err := cfg.MotiveCategories()
	require.NoError(t, err)
	assert.Len(t, cats, 8)
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crimestats.yaml")

	cfg := DefaultConfig()
	cfg.Input = "data/2013.json"
	cfg.PDF = "report.pdf"
	cfg.Categories = []string{"fraud", "greed"}
	cfg.Log.Level = "debug"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	lvl, err := loaded.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crimestats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: out/report.html\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out/report.html", cfg.Output)
	assert.Equal(t, "crime.json", cfg.Input)
	assert.Len(t, cfg.Categories, 8)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown category", "categories: [fraud, phishing]\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"empty input", "input: \"\"\n"},
		{"not yaml", "input: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "crimestats.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadOrDefault(missing, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadOrDefault(missing, true)
	assert.Error(t, err)
}
