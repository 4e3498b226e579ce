package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	m "msgextract.dev/pkg/msgextract/internal/model"
)

// Lines reserved for the pager title and help footer.
const pagerChrome = 4

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle     = lipgloss.NewStyle().Bold(true)
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// TUI implements UI using Bubble Tea for interactive display. Content that
// fits the terminal is printed directly, anything longer opens a pager.
type TUI struct {
	cmd *cobra.Command
	// height is the terminal height; 0 means unknown and always prints.
	height int
	run    func(model tea.Model, output io.Writer) error
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	tui := &TUI{cmd: cmd, run: runProgram}

	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		if _, height, err := term.GetSize(f.Fd()); err == nil {
			tui.height = height
		}
	}

	return tui
}

func runProgram(model tea.Model, output io.Writer) error {
	_, err := tea.NewProgram(model, tea.WithOutput(output), tea.WithAltScreen()).Run()
	return err
}

// DisplayMessages shows the message inventory grouped by file.
func (t *TUI) DisplayMessages(ctx context.Context, fragments []m.Fragment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := messageRows(fragments)

	var b strings.Builder

	if len(rows) == 0 {
		b.WriteString(faintStyle.Render("No messages found") + "\n")
	}

	current := ""

	for _, row := range rows {
		if row.path != current {
			current = row.path
			b.WriteString("\n" + titleStyle.Render(current) + "\n")
		}

		fmt.Fprintf(&b, "  %s %s %s", faintStyle.Render(row.position), keyStyle.Render(row.key), idStyle.Render(row.id))

		if row.placeholders != "" {
			fmt.Fprintf(&b, " [%s]", row.placeholders)
		}

		b.WriteString("\n")

		if row.desc != "" {
			b.WriteString("    " + faintStyle.Render(row.desc) + "\n")
		}
	}

	summary := fmt.Sprintf("%d message(s) in %d file(s)", len(rows), len(fragments))

	return t.page(summary, b.String())
}

// DisplayDiagnostics prints skipped messages to stderr.
func (t *TUI) DisplayDiagnostics(ctx context.Context, diagnostics []m.Diagnostic) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, diag := range diagnostics {
		_, _ = fmt.Fprintln(t.cmd.ErrOrStderr(), warnStyle.Render("skipped")+" "+diag.String())
	}

	return nil
}

// DisplayDiff shows a colored unified diff.
func (t *TUI) DisplayDiff(ctx context.Context, name string, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.page(name+" is out of date", colorDiff(diff))
}

func colorDiff(diff string) string {
	lines := strings.Split(diff, "\n")

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = keyStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = faintStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}

func (t *TUI) page(title string, content string) error {
	out := t.cmd.OutOrStdout()

	if t.height == 0 || strings.Count(content, "\n")+pagerChrome <= t.height {
		_, err := fmt.Fprintf(out, "%s\n%s", titleStyle.Render(title), content)
		return err
	}

	return t.run(newPagerModel(title, content), out)
}

// pagerModel is a scrollable view over pre-rendered content.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	quitting bool
}

func newPagerModel(title string, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - pagerChrome
		if height < 1 {
			height = 1
		}

		if !pm.ready {
			pm.viewport = viewport.New(msg.Width, height)
			pm.viewport.SetContent(pm.content)
			pm.ready = true
		} else {
			pm.viewport.Width = msg.Width
			pm.viewport.Height = height
		}

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			pm.quitting = true
			return pm, tea.Quit
		case "g", "home":
			pm.viewport.GotoTop()
			return pm, nil
		case "G", "end":
			pm.viewport.GotoBottom()
			return pm, nil
		}
	}

	var cmd tea.Cmd

	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	if !pm.ready {
		return "Loading..."
	}

	footer := faintStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll • g/G top/bottom • q quit", pm.viewport.ScrollPercent()*100))

	return titleStyle.Render(pm.title) + "\n\n" + pm.viewport.View() + "\n\n" + footer
}
