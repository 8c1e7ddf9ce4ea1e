package flightlog

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"missionctl/internal/plan"
	"missionctl/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a telemetry log line for the viewport.
type logMsg struct{ line string }

// eventMsg carries a mission event log line.
type eventMsg struct{ line string }

// telemetryMsg carries the latest row for the status header.
type telemetryMsg struct{ telemetry.Row }

// phaseMsg carries a phase change for the status header.
type phaseMsg struct {
	phase  string
	detail string
}

var (
	tuiHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	tuiPhaseStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	tuiEventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	tuiFaintStyle  = lipgloss.NewStyle().Faint(true)
)

// TUIWriter renders telemetry using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(p *plan.MissionPlan) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	prog := tea.NewProgram(newTUIModel(p), tea.WithAltScreen())
	w.program = prog
	go func() {
		_, _ = prog.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// Write implements TelemetryWriter.
func (w *TUIWriter) Write(row telemetry.Row) error {
	line := fmt.Sprintf("[%s] phase=%s north=%.2f east=%.2f alt=%.2f spd=%.2f armed=%t guided=%t",
		row.Timestamp.Format(time.RFC3339), row.Phase,
		row.North, row.East, row.AltM, row.SpeedMPS, row.Armed, row.Guided)
	w.program.Send(logMsg{line: line})
	w.program.Send(telemetryMsg{row})
	return nil
}

// WriteBatch outputs multiple telemetry rows.
func (w *TUIWriter) WriteBatch(rows []telemetry.Row) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteEvent implements EventWriter.
func (w *TUIWriter) WriteEvent(row telemetry.EventRow) error {
	var line string
	switch row.Event {
	case telemetry.EventTransition:
		line = fmt.Sprintf("[%s] %s -> %s (%s)",
			row.Timestamp.Format(time.RFC3339), row.FromPhase, row.ToPhase, row.Detail)
		w.program.Send(phaseMsg{phase: row.ToPhase, detail: row.Detail})
	case telemetry.EventCommand:
		line = fmt.Sprintf("[%s] command %s",
			row.Timestamp.Format(time.RFC3339), row.Command)
	default:
		line = fmt.Sprintf("[%s] %s %s",
			row.Timestamp.Format(time.RFC3339), row.Event, row.Detail)
	}
	w.program.Send(eventMsg{line: line})
	return nil
}

// WriteEvents outputs multiple mission events.
func (w *TUIWriter) WriteEvents(rows []telemetry.EventRow) error {
	for _, r := range rows {
		_ = w.WriteEvent(r)
	}
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	plan       *plan.MissionPlan
	table      table.Model
	vp         viewport.Model
	eventVP    viewport.Model
	logs       []string
	eventLogs  []string
	phase      string
	detail     string
	last       telemetry.Row
	haveRow    bool
	wrap       bool
	autoscroll bool
	width      int
	height     int
}

func newTUIModel(p *plan.MissionPlan) tuiModel {
	cols := []table.Column{
		{Title: "Plan", Width: 20},
		{Title: "Value", Width: 16},
	}
	rows := []table.Row{
		{"X Range (m)", fmt.Sprintf("%.1f .. %.1f", p.XStart, p.XEnd)},
		{"Y Range (m)", fmt.Sprintf("%.1f .. %.1f", p.YStart, p.YEnd)},
		{"Cruise Altitude (m)", fmt.Sprintf("%.1f", p.AltitudeM)},
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1))
	return tuiModel{
		plan:       p,
		table:      t,
		vp:         viewport.New(0, 0),
		eventVP:    viewport.New(0, 0),
		phase:      "manual",
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.eventVP.Width = msg.Width
		m.layout()
		m.refresh()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refresh()
		case "a":
			m.autoscroll = !m.autoscroll
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case logMsg:
		m.logs = append(m.logs, msg.line)
		m.refresh()
	case eventMsg:
		m.eventLogs = append(m.eventLogs, msg.line)
		m.refresh()
	case telemetryMsg:
		m.last = msg.Row
		m.haveRow = true
	case phaseMsg:
		m.phase = msg.phase
		m.detail = msg.detail
	}
	return m, nil
}

func (m *tuiModel) layout() {
	headerHeight := lipgloss.Height(m.renderHeader())
	rest := m.height - headerHeight
	if rest < 2 {
		rest = 2
	}
	m.eventVP.Height = rest / 3
	m.vp.Height = rest - m.eventVP.Height
}

func (m *tuiModel) refresh() {
	m.vp.SetContent(m.renderLines(m.logs))
	m.eventVP.SetContent(m.renderLines(m.eventLogs))
	if m.autoscroll {
		m.vp.GotoBottom()
		m.eventVP.GotoBottom()
	}
}

func (m *tuiModel) renderLines(lines []string) string {
	content := strings.Join(lines, "\n")
	if m.wrap && m.width > 0 {
		content = wordwrap.String(content, m.width)
	}
	return content
}

func (m tuiModel) renderHeader() string {
	status := tuiPhaseStyle.Render("phase: " + m.phase)
	if m.detail != "" {
		status += tuiFaintStyle.Render(" (" + m.detail + ")")
	}
	if m.haveRow {
		status += fmt.Sprintf("  north=%.2f east=%.2f alt=%.2f spd=%.2f",
			m.last.North, m.last.East, m.last.AltM, m.last.SpeedMPS)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		tuiHeaderStyle.Render("missionctl"),
		m.table.View(),
		status,
		tuiFaintStyle.Render("q quit · w wrap · a autoscroll"),
	)
}

func (m tuiModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		tuiEventStyle.Render(m.eventVP.View()),
		m.vp.View(),
	)
}
