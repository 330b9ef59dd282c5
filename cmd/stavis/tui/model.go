// Package tui implements the interactive terminal interface. One keypress is
// one engine event, handled to completion before the next is accepted, which
// is exactly the bubbletea update loop.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"stavis/cmd/stavis/ui"
	"stavis/internal/config"
	"stavis/internal/store"
	"stavis/internal/timing"
)

// localSession is the journal key for the single implicit TUI session.
const localSession = "local"

// clipboardWriteAll is swappable for tests.
var clipboardWriteAll = clipboard.WriteAll

type page int

const (
	pagePath page = iota
	pageLesson
)

// Model is the top-level bubbletea model.
type Model struct {
	styles ui.Styles
	chart  ui.Chart

	state    *timing.PathState
	consts   timing.Constants
	waveform timing.Waveform

	breakdown timing.Breakdown

	journal *store.Journal // nil disables resume/journaling
	log     *zap.Logger

	page     page
	lesson   viewport.Model
	lessonMD string

	width  int
	height int
	status string
	ready  bool
}

// New builds the TUI model from config. If journal is non-nil, the previous
// local session is replayed so the chain survives a restart.
func New(cfg config.Config, journal *store.Journal, log *zap.Logger) Model {
	state := timing.NewPathState(cfg.Catalog(), cfg.Path.MaxChainLength)
	if journal != nil {
		if replayed, err := journal.Replay(localSession, cfg.Catalog(), cfg.Path.MaxChainLength); err == nil {
			state = replayed
		} else {
			log.Warn("journal replay failed, starting fresh", zap.Error(err))
		}
	}

	consts := cfg.Constants()
	m := Model{
		styles:   ui.DefaultStyles(),
		chart:    ui.NewChart(80),
		state:    state,
		consts:   consts,
		waveform: timing.GenerateWaveform(consts.WindowEnd, consts.Step, consts.ClockPeriod, consts.LaunchClockDelay),
		journal:  journal,
		log:      log,
		lesson:   viewport.New(80, 20),
		lessonMD: lessonMarkdown,
	}
	m.breakdown = timing.Compute(m.state, m.consts)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// apply runs one engine event and immediately recomputes the breakdown, so
// the view never renders stale state.
func (m *Model) apply(e timing.Event) {
	timing.Apply(m.state, e)
	m.breakdown = timing.Compute(m.state, m.consts)

	if m.journal == nil {
		return
	}
	if e.Kind == timing.EventReset {
		if err := m.journal.Clear(localSession); err != nil {
			m.log.Warn("journal clear failed", zap.Error(err))
		}
		return
	}
	if err := m.journal.Record(localSession, e); err != nil {
		m.log.Warn("journal write failed", zap.Error(err))
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chart = ui.NewChart(msg.Width)
		m.lesson.Width = msg.Width - 4
		m.lesson.Height = msg.Height - 4
		if !m.ready {
			m.lesson.SetContent(m.renderLesson())
			m.ready = true
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.page == pageLesson {
		var cmd tea.Cmd
		m.lesson, cmd = m.lesson.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		if m.page == pageLesson {
			m.page = pagePath
		} else {
			m.page = pageLesson
		}
		return m, nil
	case "esc":
		m.page = pagePath
		return m, nil
	}

	if m.page == pageLesson {
		var cmd tea.Cmd
		m.lesson, cmd = m.lesson.Update(msg)
		return m, cmd
	}

	m.status = ""
	switch key {
	case "n":
		m.apply(timing.Event{Kind: timing.EventAddBuffer, Variant: timing.VariantNormal})
	case "l":
		m.apply(timing.Event{Kind: timing.EventAddBuffer, Variant: timing.VariantLVT})
	case "h":
		m.apply(timing.Event{Kind: timing.EventAddBuffer, Variant: timing.VariantHVT})
	case "backspace", "d":
		m.apply(timing.Event{Kind: timing.EventRemoveLast})
	case "r":
		m.apply(timing.Event{Kind: timing.EventReset})
	case "s":
		m.apply(timing.Event{Kind: timing.EventSetSetupCheck, Enabled: !m.state.SetupCheck()})
	case "c":
		if err := clipboardWriteAll(timing.Summary(m.breakdown)); err != nil {
			m.status = m.styles.Violated.Render("clipboard copy failed")
		} else {
			m.status = m.styles.Met.Render("summary copied to clipboard")
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.page == pageLesson {
		return m.viewLesson()
	}
	return m.viewPath()
}

func (m Model) viewPath() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("STA Visualizer: Add Buffers to the Net"))
	sb.WriteString("\n\n")

	ann := timing.Annotate(m.breakdown, m.consts)
	sb.WriteString(m.chart.View(m.waveform, ann, m.styles))
	sb.WriteString("\n\n")

	for _, line := range timing.InfoLines(m.breakdown) {
		style := m.styles.Body
		if strings.HasPrefix(line, "Slack") {
			if m.breakdown.Met() {
				style = m.styles.Met
			} else {
				style = m.styles.Violated
			}
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(ui.NewReportTable(timing.ReportRows(m.breakdown)).View(m.styles))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Summary.Render(timing.Summary(m.breakdown)))
	sb.WriteString("\n")

	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteString("\n")
	}

	sb.WriteString(m.footer())
	return sb.String()
}

func (m Model) viewLesson() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("What is setup timing?"))
	sb.WriteString("\n")
	sb.WriteString(m.lesson.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("?: back  •  esc: back  •  q: quit"))
	return sb.String()
}

func (m Model) footer() string {
	setupState := "off"
	if m.state.SetupCheck() {
		setupState = "on"
	}
	keys := []string{
		"n: +buffer", "l: +LVT", "h: +HVT",
		"d: remove", "r: reset",
		fmt.Sprintf("s: setup check (%s)", setupState),
		"c: copy", "?: lesson", "q: quit",
	}
	return m.styles.Footer.Render(strings.Join(keys, "  •  "))
}
