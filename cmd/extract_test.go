package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"msgextract.dev/pkg/msgextract/internal/domain"
	domainmocks "msgextract.dev/pkg/msgextract/internal/domain/mocks"
	m "msgextract.dev/pkg/msgextract/internal/model"
)

func newTestCLI(t *testing.T) (*cobra.Command, *domainmocks.MockWorkflow, *bytes.Buffer) {
	t.Helper()

	t.Setenv("MSGEXTRACT_LOG_FILENAME", filepath.Join(t.TempDir(), "test.log"))

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(newExtractCmd(), newListCmd(), newCheckCmd())
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, mockWorkflow, out
}

func TestExtractCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow, out := newTestCLI(t)

	mockWorkflow.On("Extract", mock.Anything, mock.MatchedBy(func(args domain.ExtractArgs) bool {
		return len(args.Paths) == 0 &&
			args.Project == "" &&
			args.Scheme == "canonical" &&
			args.Parallel == defaultParallel &&
			args.Output == "" &&
			args.Out == out &&
			!args.Wrap &&
			args.Lang == "en"
	})).Return(nil)

	cmd.SetArgs([]string{"extract"})
	require.NoError(t, cmd.Execute())
}

func TestExtractCmd_Flags(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCLI(t)

	mockWorkflow.On("Extract", mock.Anything, mock.MatchedBy(func(args domain.ExtractArgs) bool {
		return len(args.Paths) == 2 &&
			args.Paths[0] == m.Path("./src/...") &&
			args.Paths[1] == m.Path("./lib/msgs.js") &&
			args.Project == "notepad" &&
			args.Scheme == "closure" &&
			args.Parallel == 3 &&
			args.Output == m.Path("out/fr.xtb") &&
			args.Wrap &&
			args.Lang == "fr" &&
			len(args.Exclude) == 2 &&
			args.Exclude[0] == "_test\\.js$" &&
			args.Exclude[1] == "^vendor/"
	})).Return(nil)

	cmd.SetArgs([]string{
		"extract",
		"-p", "notepad",
		"--id-scheme", "closure",
		"-j", "3",
		"-o", "out/fr.xtb",
		"--wrap", "--lang", "fr",
		"-x", "_test\\.js$", "-x", "^vendor/",
		"./src/...", "./lib/msgs.js",
	})
	require.NoError(t, cmd.Execute())
}

func TestExtractCmd_EnvConfig(t *testing.T) {
	t.Setenv("MSGEXTRACT_PROJECT", "fromenv")
	cmd, mockWorkflow, _ := newTestCLI(t)

	mockWorkflow.On("Extract", mock.Anything, mock.MatchedBy(func(args domain.ExtractArgs) bool {
		return args.Project == "fromenv"
	})).Return(nil)

	cmd.SetArgs([]string{"extract"})
	require.NoError(t, cmd.Execute())
}

func TestExtractCmd_PropagatesError(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCLI(t)

	failure := &m.SourceError{Path: "broken.js", Err: errors.New("unexpected token")}
	mockWorkflow.On("Extract", mock.Anything, mock.Anything).Return(failure)

	cmd.SetArgs([]string{"extract", "broken.js"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrSourceRead)
}
