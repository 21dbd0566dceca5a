package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Sharon-codes/UIDAI-Hackathon/engine"
	"github.com/Sharon-codes/UIDAI-Hackathon/intel"
	"github.com/Sharon-codes/UIDAI-Hackathon/report"
	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// ---------------------------------------------------------------------------
// explorer styles
// ---------------------------------------------------------------------------

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00f2ff"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0b1120")).Background(lipgloss.Color("#00f2ff"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#334155")).Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true)
)

const maxListedRows = 15

// exploreModel is the bubbletea model behind `pulse explore`: a search box
// over districts and a brief panel for the selected one.
type exploreModel struct {
	view       engine.RecordView
	state      string
	input      textinput.Model
	results    []schema.Record
	cursor     int
	selected   *schema.Record
	futureCast bool
}

func newExploreModel(view engine.RecordView, state string) exploreModel {
	ti := textinput.New()
	ti.Placeholder = "Search districts"
	ti.CharLimit = 64
	ti.Focus()

	m := exploreModel{view: view, state: state, input: ti}
	m.refresh()
	return m
}

func (m *exploreModel) refresh() {
	m.results = engine.SearchDistricts(m.view, m.state, m.input.Value(), engine.SearchLimit)
	if m.cursor >= len(m.results) {
		m.cursor = max(len(m.results)-1, 0)
	}
}

func (m exploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if m.selected != nil {
			m.selected = nil
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, tea.Quit
	}

	if m.selected != nil {
		if key.Type == tea.KeyTab || key.String() == "f" {
			m.futureCast = !m.futureCast
		}
		return m, nil
	}

	switch key.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyEnter:
		if len(m.results) > 0 {
			rec := m.results[m.cursor]
			m.selected = &rec
			m.input.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m exploreModel) View() string {
	if m.selected != nil {
		return m.briefView(*m.selected)
	}

	var b strings.Builder
	scope := engine.AllStatesLabel
	if m.state != "" {
		scope = m.state
	}
	b.WriteString(titleStyle.Render("Aadhaar Pulse · District Explorer") + "  " + dimStyle.Render(scope) + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	if len(m.results) == 0 {
		b.WriteString(dimStyle.Render("No matching districts.") + "\n")
	}
	for i, rec := range m.results {
		if i >= maxListedRows {
			b.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", len(m.results)-maxListedRows)) + "\n")
			break
		}
		ami := rec.AMIScore * 10
		line := fmt.Sprintf("%-24s %-22s", rec.District, rec.State)
		score := lipgloss.NewStyle().Foreground(lipgloss.Color(engine.ScoreColor(ami))).Render(fmt.Sprintf("AMI %4.1f", ami))
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		line += " " + score
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("↑/↓ move · enter open · esc quit") + "\n")
	return b.String()
}

func (m exploreModel) briefView(rec schema.Record) string {
	brief := intel.Classify(rec, intel.ModeFromFlag(m.futureCast))
	levelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(intel.LevelColor(brief.Risk.Level)))

	title := fmt.Sprintf("%s, %s", strings.ToUpper(rec.District), strings.ToUpper(rec.State))
	if m.futureCast {
		title += " (FUTURECAST)"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	if rank, total := stateRank(m.view, rec); rank > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Ranked %s of %s districts in %s by AMI",
			humanize.Ordinal(rank), humanize.Comma(int64(total)), rec.State)) + "\n")
	}
	b.WriteString("\n")

	metrics := brief.Metrics
	fmt.Fprintf(&b, "AMI %.1f/10   ERP %.1f%%   ICMP %.1f%%   Inclusion gap %.1f%%\n",
		metrics.AMI, metrics.ERP, metrics.ICMP, metrics.LastMile)
	fmt.Fprintf(&b, "Risk: %s\n\n", levelStyle.Render(fmt.Sprintf("%s (%d%%)", brief.Risk.Level, brief.Risk.Score)))

	var cards []string
	for _, c := range brief.Strategy {
		cards = append(cards, panelStyle.Width(34).Render(headingStyle.Render(c.Title)+"\n"+report.StripMarkup(c.Body)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")

	b.WriteString(headingStyle.Render("Compliance") + "  " + brief.Compliance.Priority + " · " + brief.Compliance.Timeline + "\n")
	b.WriteString(report.StripMarkup(brief.Compliance.Action) + "\n")
	b.WriteString(headingStyle.Render("Region") + "  " + string(brief.Regional) + "\n")

	b.WriteString("\n" + dimStyle.Render("tab toggle FutureCast · esc back") + "\n")
	return b.String()
}

// stateRank returns the district's AMI position within its state.
func stateRank(view engine.RecordView, rec schema.Record) (int, int) {
	entries, _ := engine.Aggregate(view, rec.State)
	ranked := engine.Top(entries, schema.KeyAMI, len(entries))
	for i, e := range ranked {
		if e.Name == rec.District {
			return i + 1, len(ranked)
		}
	}
	return 0, len(ranked)
}

func explore(view engine.RecordView, state string) error {
	if view.Len() == 0 {
		return fmt.Errorf("no records to explore")
	}
	_, err := tea.NewProgram(newExploreModel(view, state), tea.WithAltScreen()).Run()
	return err
}
