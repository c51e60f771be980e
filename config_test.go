package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mgmeyers/pdfannotator/editor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, editor.DefaultConfig(), cfg.Editor)
	assert.Equal(t, "pdf-editor-recent-signatures", cfg.Recents.Key)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, "cfg.toml", `
[editor]
history_capacity = 20
snap_threshold = 4.5

[export]
text_color = "#112233"
padding_x = 4

[recents]
path = "/tmp/somewhere"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Editor.HistoryCapacity)
	assert.Equal(t, 4.5, cfg.Editor.SnapThreshold)
	assert.Equal(t, 4.0, cfg.Editor.MaxZoom)
	assert.Equal(t, "#112233", cfg.Export.TextColor)
	assert.Equal(t, 4.0, cfg.Export.PaddingX)
	assert.Equal(t, "Helvetica", cfg.Export.Font)
	assert.Equal(t, "/tmp/somewhere", cfg.Recents.Path)
}

func TestLoadConfigRejects(t *testing.T) {
	for name, content := range map[string]string{
		"unknown key":  "[editor]\nsnap = 3\n",
		"zoom range":   "[editor]\nmin_zoom = 5.0\n",
		"capacity":     "[editor]\nhistory_capacity = 0\n",
		"bad color":    "[export]\ntext_color = \"blue\"\n",
		"syntax error": "[editor\n",
	} {
		_, err := LoadConfig(writeFile(t, "cfg.toml", content))
		assert.Error(t, err, name)
	}
}
