package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestYAMLUI_DisplayMessages(t *testing.T) {
	cmd, out, _ := newTestCommand()

	err := NewYAMLUI(cmd).DisplayMessages(context.Background(), sampleFragments())
	require.NoError(t, err)

	var manifest struct {
		Files []fileManifest `yaml:"files"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &manifest))

	require.Len(t, manifest.Files, 1)
	assert.Equal(t, "app/hello.js", manifest.Files[0].Path)
	require.Len(t, manifest.Files[0].Messages, 2)
	assert.Equal(t, messageManifest{
		Key:          "MSG_HELLO",
		ID:           "6401921416235019197",
		Position:     "3:5",
		Text:         "Hello, {$userName}!",
		Placeholders: []string{"USER_NAME"},
		Desc:         "Greeting",
	}, manifest.Files[0].Messages[0])
	assert.True(t, manifest.Files[0].Messages[1].Hidden)
}

func TestYAMLUI_DisplayDiagnostics(t *testing.T) {
	cmd, out, errOut := newTestCommand()

	ui := NewYAMLUI(cmd)
	require.NoError(t, ui.DisplayDiagnostics(context.Background(), nil))
	assert.Empty(t, errOut.String())

	require.NoError(t, ui.DisplayDiagnostics(context.Background(), sampleDiagnostics()))
	assert.Empty(t, out.String())

	var manifest struct {
		Skipped []diagnosticManifest `yaml:"skipped"`
	}
	require.NoError(t, yaml.Unmarshal(errOut.Bytes(), &manifest))
	require.Len(t, manifest.Skipped, 1)
	assert.Equal(t, "MSG_BAD", manifest.Skipped[0].Key)
	assert.Equal(t, "1:5", manifest.Skipped[0].Position)
}

func TestYAMLUI_DisplayDiff(t *testing.T) {
	cmd, out, _ := newTestCommand()

	require.NoError(t, NewYAMLUI(cmd).DisplayDiff(context.Background(), "bundle.xtb", "-a\n+b\n"))

	var manifest struct {
		Bundle string `yaml:"bundle"`
		Stale  bool   `yaml:"stale"`
		Diff   string `yaml:"diff"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &manifest))
	assert.Equal(t, "bundle.xtb", manifest.Bundle)
	assert.True(t, manifest.Stale)
	assert.Equal(t, "-a\n+b\n", manifest.Diff)
}
