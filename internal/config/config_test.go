package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDir_EnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("DATEFIELD_DATA_DIR", dir)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	dbPath, err := DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DbName), dbPath)

	cfgPath, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigName), cfgPath)

	logDir, err := LogDir()
	require.NoError(t, err)
	assert.DirExists(t, logDir)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigName)
	content := `
syntax: strftime
edit_format: "%Y-%m-%d"
display_format: "%d %b %Y"
location: UTC
parse:
  relative: false
  reject_past: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SyntaxStrftime, cfg.Syntax)
	assert.Equal(t, "%Y-%m-%d", cfg.EditFormat)
	assert.Equal(t, "%d %b %Y", cfg.DisplayFormat)
	assert.False(t, cfg.Parse.Relative)
	assert.True(t, cfg.Parse.RejectPast)

	loc, err := cfg.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{name: "bad yaml", content: "syntax: [", errText: "failed to parse config"},
		{name: "unknown syntax", content: "syntax: moment", errText: "unknown syntax"},
		{name: "empty edit format", content: "edit_format: \"\"", errText: "edit_format is required"},
		{name: "empty display format", content: "display_format: \" \"", errText: "display_format is required"},
		{name: "unknown location", content: "location: Mars/Olympus", errText: "unknown location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestSave_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigName)

	cfg := Default()
	cfg.Syntax = SyntaxStyle
	cfg.EditFormat = "iso"
	cfg.DisplayFormat = "long"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
