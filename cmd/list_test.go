package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"msgextract.dev/pkg/msgextract/internal/domain"
	m "msgextract.dev/pkg/msgextract/internal/model"
)

func TestListCmd(t *testing.T) {
	cmd, mockWorkflow, _ := newTestCLI(t)

	mockWorkflow.On("List", mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Paths) == 1 &&
			args.Paths[0] == m.Path("./app/...") &&
			args.Project == "app"
	})).Return(nil)

	cmd.SetArgs([]string{"list", "--project", "app", "./app/..."})
	require.NoError(t, cmd.Execute())
}
