package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

func TestSimpleUI_DisplayMessages(t *testing.T) {
	tests := []struct {
		name         string
		fragments    []m.Fragment
		wantContains []string
	}{
		{
			name:         "no messages",
			fragments:    nil,
			wantContains: []string{"No messages found"},
		},
		{
			name:      "messages table",
			fragments: sampleFragments(),
			wantContains: []string{
				"app/hello.js", "MSG_HELLO", "6401921416235019197", "USER_NAME", "Greeting",
				"MSG_BYE", "3:5", "TOTAL FILES 1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, out, _ := newTestCommand()

			err := NewSimpleUI(cmd).DisplayMessages(context.Background(), tt.fragments)
			require.NoError(t, err)

			for _, want := range tt.wantContains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestSimpleUI_DisplayDiagnostics_UsesStderr(t *testing.T) {
	cmd, out, errOut := newTestCommand()

	err := NewSimpleUI(cmd).DisplayDiagnostics(context.Background(), sampleDiagnostics())
	require.NoError(t, err)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "skipped app/bad.js:1:5: MSG_BAD: malformed message declaration")
}

func TestSimpleUI_DisplayDiff(t *testing.T) {
	cmd, out, _ := newTestCommand()

	err := NewSimpleUI(cmd).DisplayDiff(context.Background(), "bundle.xtb", "-old\n+new\n")
	require.NoError(t, err)

	assert.Equal(t, "bundle.xtb is out of date:\n-old\n+new\n", out.String())
}

func TestSimpleUI_CanceledContext(t *testing.T) {
	cmd, out, _ := newTestCommand()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui := NewSimpleUI(cmd)
	require.Error(t, ui.DisplayMessages(ctx, sampleFragments()))
	require.Error(t, ui.DisplayDiagnostics(ctx, sampleDiagnostics()))
	require.Error(t, ui.DisplayDiff(ctx, "b", "d"))
	assert.Empty(t, out.String())
}
