package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayMessages prints the message inventory as a table.
func (s *SimpleUI) DisplayMessages(ctx context.Context, fragments []m.Fragment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := messageRows(fragments)
	if len(rows) == 0 {
		s.printf("No messages found\n")
		return nil
	}

	s.printf("%s", renderMessageTable(rows, len(fragments)))

	return nil
}

// DisplayDiagnostics prints one line per skipped message to stderr.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, diagnostics []m.Diagnostic) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, diag := range diagnostics {
		s.errorf("skipped %s\n", diag)
	}

	return nil
}

// DisplayDiff prints a unified diff.
func (s *SimpleUI) DisplayDiff(ctx context.Context, name string, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s is out of date:\n%s", name, diff)

	return nil
}

func renderMessageTable(rows []messageRow, files int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Position", "Key", "ID", "Placeholders", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, row := range rows {
		table.Append([]string{row.path, row.position, row.key, row.id, row.placeholders, row.desc})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", files),
		"",
		fmt.Sprintf("%d", len(rows)),
		"", "", "",
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
