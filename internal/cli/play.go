package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/algoviz/algoviz/pkg/annotate"
	"github.com/algoviz/algoviz/pkg/frame"
	"github.com/algoviz/algoviz/pkg/playback"
)

// Player styles
var (
	playHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	playDescStyle      = lipgloss.NewStyle().Foreground(colorWhite)
	playStructStyle    = lipgloss.NewStyle().Foreground(colorGray)
	playHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	playDimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	playBarStyle       = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	defaultPlaySpeed = 500 * time.Millisecond
	minPlaySpeed     = 100 * time.Millisecond
	maxPlaySpeed     = 2 * time.Second
)

// playCommand creates the play command for interactive frame stepping.
func (c *CLI) playCommand() *cobra.Command {
	var speedMS int

	cmd := &cobra.Command{
		Use:   "play [session.json]",
		Short: "Step through a session's frames in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := frame.ReadSessionFile(args[0])
			if err != nil {
				return err
			}
			if len(s.Frames) == 0 {
				printWarning("Session has no frames")
				return nil
			}

			speed := time.Duration(speedMS) * time.Millisecond
			if speed <= 0 {
				speed = defaultPlaySpeed
			}

			m := newPlayerModel(s, speed)
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&speedMS, "speed", int(defaultPlaySpeed/time.Millisecond), "autoplay interval in milliseconds")

	return cmd
}

// =============================================================================
// PlayerModel - Interactive frame stepping
// =============================================================================

// tickMsg advances the cursor during autoplay.
type tickMsg time.Time

// PlayerModel is the bubbletea model for stepping through a session.
type PlayerModel struct {
	Session *frame.Session
	Cursor  *playback.Cursor
	Playing bool
	Speed   time.Duration
	Width   int
}

// newPlayerModel creates a player positioned at the first frame.
func newPlayerModel(s *frame.Session, speed time.Duration) PlayerModel {
	return PlayerModel{
		Session: s,
		Cursor:  playback.NewCursor(len(s.Frames)),
		Speed:   speed,
		Width:   80,
	}
}

func (m PlayerModel) Init() tea.Cmd {
	return nil
}

func (m PlayerModel) tick() tea.Cmd {
	return tea.Tick(m.Speed, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.Playing = false
			m.Cursor.Prev()
		case "right", "l":
			m.Playing = false
			m.Cursor.Next()
		case "home", "g":
			m.Playing = false
			m.Cursor.First()
		case "end", "G":
			m.Playing = false
			m.Cursor.Last()
		case " ":
			if m.Cursor.AtEnd() {
				m.Cursor.First()
			}
			m.Playing = !m.Playing
			if m.Playing {
				return m, m.tick()
			}
		case "+", "=":
			if m.Speed > minPlaySpeed {
				m.Speed /= 2
			}
		case "-":
			if m.Speed < maxPlaySpeed {
				m.Speed *= 2
			}
		}
	case tickMsg:
		if !m.Playing {
			return m, nil
		}
		m.Cursor.Next()
		if m.Cursor.AtEnd() {
			m.Playing = false
			return m, nil
		}
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		if m.Width < 40 {
			m.Width = 40
		}
	}
	return m, nil
}

func (m PlayerModel) View() string {
	var b strings.Builder

	name := m.Session.Name
	if name == "" {
		name = "session"
	}
	title := name
	if m.Session.Module != "" {
		title += "  " + playDimStyle.Render("["+m.Session.Module+"]")
	}
	b.WriteString(playHeaderStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(playDimStyle.Render("←/→ step  g/G first/last  space play/pause  +/- speed  q quit"))
	b.WriteString("\n\n")

	f := m.Session.Frames[m.Cursor.Index()]

	b.WriteString(m.progressLine())
	b.WriteString("\n\n")

	if f.Description != "" {
		b.WriteString(playDescStyle.Render(f.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(renderFrameText(f))

	return b.String()
}

// progressLine renders "frame 3/12" with a proportional bar.
func (m PlayerModel) progressLine() string {
	idx, total := m.Cursor.Index(), m.Cursor.Total()

	barWidth := m.Width - 20
	if barWidth > 48 {
		barWidth = 48
	}
	if barWidth < 10 {
		barWidth = 10
	}

	filled := 0
	if total > 1 {
		filled = idx * (barWidth - 1) / (total - 1)
	}
	bar := playBarStyle.Render(strings.Repeat("█", filled+1)) +
		playDimStyle.Render(strings.Repeat("░", barWidth-filled-1))

	status := ""
	if m.Playing {
		status = playDimStyle.Render(fmt.Sprintf("  ▶ %s", m.Speed))
	}
	return fmt.Sprintf("%s  %s%s", bar, playDimStyle.Render(fmt.Sprintf("frame %d/%d", idx+1, total)), status)
}

// =============================================================================
// Textual frame rendering
// =============================================================================

// renderFrameText builds a plain-text view of every structure in the frame.
// The terminal player shows values, not geometry; the render command produces
// the full visual artifacts.
func renderFrameText(f frame.Frame) string {
	var b strings.Builder

	for _, a := range f.Arrays {
		writeStructLine(&b, structName("array", a.Name), arrayLine(a))
	}
	for _, s := range f.Stacks {
		writeStructLine(&b, structName("stack", s.Name), stackLine(s))
	}
	for _, q := range f.Queues {
		writeStructLine(&b, structName("queue", q.Name), queueLine(q))
	}
	for _, l := range f.LinkedLists {
		writeStructLine(&b, structName("list", l.Name), listLine(l))
	}
	for _, t := range f.Trees {
		writeStructLine(&b, structName("tree", t.Name), fmt.Sprintf("%d nodes", len(t.Nodes)))
	}
	for _, g := range f.Graphs {
		writeStructLine(&b, structName("graph", g.Name), fmt.Sprintf("%d nodes, %d edges", len(g.Nodes), len(g.Edges)))
	}
	for _, v := range f.Variables {
		writeStructLine(&b, v.Name, fmt.Sprintf("%v", v.Value))
	}

	if b.Len() == 0 {
		return playDimStyle.Render("(nothing to show yet)") + "\n"
	}
	return b.String()
}

func writeStructLine(b *strings.Builder, name, content string) {
	b.WriteString(playStructStyle.Render(fmt.Sprintf("%-12s", name)))
	b.WriteString(" ")
	b.WriteString(content)
	b.WriteString("\n")
}

func structName(kind, name string) string {
	if name == "" {
		return kind
	}
	return name
}

// arrayLine formats array values with annotated indices emphasized.
func arrayLine(a frame.ArraySnapshot) string {
	ann := annotate.Normalize(a.Highlights)
	parts := make([]string, len(a.Values))
	for i, v := range a.Values {
		s := formatNumber(v)
		if _, ok := ann[i]; ok {
			s = playHighlightStyle.Render(s)
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// stackLine formats stack values top-first.
func stackLine(s frame.StackSnapshot) string {
	if len(s.Values) == 0 {
		return playDimStyle.Render("(empty)")
	}
	ann := annotate.Normalize(s.Highlights)
	parts := make([]string, 0, len(s.Values))
	for i := len(s.Values) - 1; i >= 0; i-- {
		v := formatNumber(s.Values[i])
		if _, ok := ann[i]; ok {
			v = playHighlightStyle.Render(v)
		}
		parts = append(parts, v)
	}
	return "top → " + strings.Join(parts, " ")
}

// queueLine formats queue values front-first.
func queueLine(q frame.QueueSnapshot) string {
	if len(q.Values) == 0 {
		return playDimStyle.Render("(empty)")
	}
	ann := annotate.Normalize(q.Highlights)
	parts := make([]string, len(q.Values))
	for i, v := range q.Values {
		s := formatNumber(v)
		if _, ok := ann[i]; ok {
			s = playHighlightStyle.Render(s)
		}
		parts[i] = s
	}
	return "front → " + strings.Join(parts, " ") + " ← rear"
}

// listLine walks the linked list from head following next pointers.
func listLine(l frame.ListSnapshot) string {
	if len(l.Nodes) == 0 {
		return playDimStyle.Render("(empty)")
	}

	start := l.Nodes[0].ID
	if l.HeadID != nil {
		start = *l.HeadID
	}

	var parts []string
	id := &start
	// Visited guard: a malformed next chain must not loop forever.
	seen := make(map[int]bool)
	for id != nil && !seen[*id] {
		seen[*id] = true
		n, ok := l.Node(*id)
		if !ok {
			break
		}
		s := formatNumber(n.Value)
		if n.Highlighted {
			s = playHighlightStyle.Render(s)
		}
		parts = append(parts, s)
		id = n.NextID
	}
	return strings.Join(parts, " → ") + " → ∅"
}

// formatNumber prints int-like values without a decimal point.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
