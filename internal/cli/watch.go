package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/blockflow/blockflow/pkg/cache"
	"github.com/blockflow/blockflow/pkg/pipeline"
	"github.com/blockflow/blockflow/pkg/render"
	"github.com/blockflow/blockflow/pkg/render/canvas"
	"github.com/blockflow/blockflow/pkg/render/route"
)

// pollInterval is how often the watched file's modification time is checked.
const pollInterval = 500 * time.Millisecond

// horizontalStep is how many cells a left/right key scrolls.
const horizontalStep = 4

// watchCommand creates the watch command for live terminal previews.
func (c *CLI) watchCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Live-preview a diagram file in the terminal",
		Long: `Live-preview a diagram file in the terminal.

The watch command renders the file and re-renders whenever it changes on
disk. Previews larger than the terminal scroll with the arrow keys or
h/j/k/l. Press "s" to cycle the glyph style, "r" to force a re-render,
and "q" to quit.

A diagram that stops parsing mid-edit keeps the last good preview on
screen with the error shown beneath it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runWatch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Render.Style, "style", render.DefaultStyle, "initial glyph style: ascii (default), unicode")
	cmd.Flags().IntVar(&opts.Render.HMargin, "hmargin", render.DefaultHMargin, "gutter width in cells between grid columns")
	cmd.Flags().IntVar(&opts.Render.VMargin, "vmargin", render.DefaultVMargin, "gutter height in cells between grid rows")
	cmd.Flags().IntVar(&opts.Render.Padding, "padding", 0, "blank cells between block text and border")

	return cmd
}

// runWatch starts the bubbletea program for the given options.
func (c *CLI) runWatch(ctx context.Context, opts pipeline.Options) error {
	// Stage logs would tear the alternate screen, so the watch runner gets
	// a discard logger. Failures surface inside the preview instead.
	runner := pipeline.NewRunner(cache.NewNullCache(), newLogger(io.Discard, LogInfo))
	defer runner.Close()

	opts.Sink = pipeline.SinkText

	p := tea.NewProgram(newWatchModel(runner, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// =============================================================================
// Messages
// =============================================================================

// tickMsg fires on every poll interval.
type tickMsg time.Time

// renderDoneMsg carries the result of a background render.
type renderDoneMsg struct {
	res *pipeline.Result
	err error
}

// =============================================================================
// watchModel - Live Preview
// =============================================================================

// watchModel is the bubbletea model for the live preview.
type watchModel struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	path   string

	// Last render results
	text     string
	warnings []route.Warning
	blocks   int
	edges    int
	err      error

	modTime  time.Time
	renders  int
	styleIdx int

	// Terminal and scroll state
	width   int
	height  int
	offsetX int
	offsetY int
}

// newWatchModel creates the preview model. The initial modification time is
// captured up front so the first poll does not re-render an unchanged file.
func newWatchModel(runner *pipeline.Runner, opts pipeline.Options) watchModel {
	m := watchModel{
		runner: runner,
		opts:   opts,
		path:   opts.Input,
	}
	if info, err := os.Stat(m.path); err == nil {
		m.modTime = info.ModTime()
	}
	for i, name := range canvas.Styles() {
		if name == opts.Render.Style {
			m.styleIdx = i
		}
	}
	return m
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.renderCmd(), m.tick())
}

// renderCmd runs the pipeline in the background and reports the result.
func (m watchModel) renderCmd() tea.Cmd {
	runner, opts := m.runner, m.opts
	return func() tea.Msg {
		res, err := runner.Execute(context.Background(), opts)
		return renderDoneMsg{res: res, err: err}
	}
}

// tick schedules the next modification-time poll.
func (m watchModel) tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.renderCmd()
		case "s":
			styles := canvas.Styles()
			m.styleIdx = (m.styleIdx + 1) % len(styles)
			m.opts.Render.Style = styles[m.styleIdx]
			return m, m.renderCmd()
		case "up", "k":
			m.offsetY--
			m.clampScroll()
		case "down", "j":
			m.offsetY++
			m.clampScroll()
		case "left", "h":
			m.offsetX -= horizontalStep
			m.clampScroll()
		case "right", "l":
			m.offsetX += horizontalStep
			m.clampScroll()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()

	case tickMsg:
		if info, err := os.Stat(m.path); err == nil && info.ModTime().After(m.modTime) {
			m.modTime = info.ModTime()
			return m, tea.Batch(m.renderCmd(), m.tick())
		}
		return m, m.tick()

	case renderDoneMsg:
		m.renders++
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.text = msg.res.Render.Text
		m.warnings = msg.res.Render.Warnings
		m.blocks = msg.res.Stats.BlockCount
		m.edges = msg.res.Stats.EdgeCount
		m.clampScroll()
		return m, nil
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName) + " " + StyleDim.Render(m.path))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.statusLine()))
	b.WriteString("\n\n")

	lines := strings.Split(m.text, "\n")
	top := m.offsetY
	bottom := top + m.viewportHeight()
	if bottom > len(lines) {
		bottom = len(lines)
	}
	for i := top; i < bottom; i++ {
		b.WriteString(sliceLine(lines[i], m.offsetX, m.viewportWidth()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, line := range m.footerAlerts() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("↑/↓/←/→ scroll  s style  r re-render  q quit"))

	return b.String()
}

// statusLine summarizes the current render.
func (m watchModel) statusLine() string {
	parts := []string{
		StyleHighlight.Render(m.opts.Render.Style),
		fmt.Sprintf("%d blocks", m.blocks),
		fmt.Sprintf("%d edges", m.edges),
		fmt.Sprintf("render #%d", m.renders),
	}
	return strings.Join(parts, " · ")
}

// footerAlerts returns the warning and error lines shown above the key help.
func (m watchModel) footerAlerts() []string {
	var lines []string
	for _, w := range m.warnings {
		lines = append(lines, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(w.String()))
	}
	if m.err != nil {
		lines = append(lines, styleIconError.Render(iconError)+" "+StyleWarning.Render(m.err.Error()))
	}
	return lines
}

// viewportHeight is the number of preview rows that fit the terminal.
// Three chrome lines sit above the preview and the footer sits below it.
func (m watchModel) viewportHeight() int {
	if m.height == 0 {
		return 24
	}
	h := m.height - 3 - 2 - len(m.footerAlerts())
	if h < 1 {
		return 1
	}
	return h
}

// viewportWidth is the number of preview columns that fit the terminal.
func (m watchModel) viewportWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width
}

// clampScroll keeps the scroll offsets inside the rendered text.
func (m *watchModel) clampScroll() {
	lines := strings.Split(m.text, "\n")

	maxY := len(lines) - m.viewportHeight()
	if maxY < 0 {
		maxY = 0
	}
	if m.offsetY > maxY {
		m.offsetY = maxY
	}
	if m.offsetY < 0 {
		m.offsetY = 0
	}

	widest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > widest {
			widest = n
		}
	}
	maxX := widest - m.viewportWidth()
	if maxX < 0 {
		maxX = 0
	}
	if m.offsetX > maxX {
		m.offsetX = maxX
	}
	if m.offsetX < 0 {
		m.offsetX = 0
	}
}

// sliceLine returns width cells of line starting at cell from.
// Slicing runes keeps the unicode glyph style intact.
func sliceLine(line string, from, width int) string {
	runes := []rune(line)
	if from >= len(runes) {
		return ""
	}
	end := from + width
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[from:end])
}
