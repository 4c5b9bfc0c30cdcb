// Package tui is the local host interface: a Bubble Tea program that walks
// the party stages on one terminal, for running a tournament without the
// WebSocket server.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/duetstage/singoff/internal/catalog"
	"github.com/duetstage/singoff/internal/party"
	"github.com/duetstage/singoff/internal/session"
)

const (
	phaseChooseSong = iota
	phaseScore
)

// Model is the Bubble Tea model for the host terminal UI. It owns the stage
// machine and receives its navigation requests and events directly.
type Model struct {
	machine *party.Machine
	session *session.Session
	lib     *catalog.Library
	cfg     *party.Config
	logger  *log.Logger

	screen     party.Screen
	gridChoice int // index into party.SupportedGridSizes
	cursor     int // grid cell under the cursor on the main screen
	songCursor int
	singPhase  int
	nameField  int

	nameInput  textinput.Model
	scoreInput textinput.Model

	eventLog []string
	errMsg   string

	width    int
	height   int
	quitting bool
}

// New builds the model and its machine. The model is both the machine's
// Navigator and an event subscriber.
func New(cfg *party.Config, lib *catalog.Library, rng party.Rand, logger *log.Logger) *Model {
	name := textinput.New()
	name.Placeholder = "Team name"
	name.CharLimit = 30
	name.Width = 30
	name.Prompt = "> "
	name.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	score := textinput.New()
	score.Placeholder = "points team 1, points team 2 (e.g. 87.4 62.9)"
	score.CharLimit = 20
	score.Width = 44
	score.Prompt = "> "
	score.PromptStyle = name.PromptStyle

	m := &Model{
		session:    session.New(),
		lib:        lib,
		cfg:        cfg,
		logger:     logger.WithPrefix("tui"),
		screen:     party.ScreenConfig,
		nameInput:  name,
		scoreInput: score,
	}
	for i, size := range party.SupportedGridSizes {
		if size == cfg.GridSize {
			m.gridChoice = i
		}
	}
	m.machine = party.NewMachine(cfg, party.Deps{
		Rng:       rng,
		Catalog:   lib.Catalog,
		Playlists: lib.Playlists,
		Session:   m.session,
		Nav:       m,
	}, logger)
	m.machine.Events().Subscribe(m)
	return m
}

// FadeTo implements party.Navigator.
func (m *Model) FadeTo(screen party.Screen) {
	m.screen = screen
}

// OnEvent implements party.EventSubscriber, keeping a short history for the
// footer.
func (m *Model) OnEvent(event party.Event) {
	var line string
	switch e := event.(type) {
	case party.TournamentStartedEvent:
		line = fmt.Sprintf("tournament started, team %d begins", e.StartingTeam+1)
	case party.RoundStartedEvent:
		line = fmt.Sprintf("cell %d: profiles %d vs %d", e.RoundNr, e.Profile1, e.Profile2)
	case party.SongChosenEvent:
		line = fmt.Sprintf("cell %d sings song %d", e.RoundNr, e.SongID)
	case party.RoundScoredEvent:
		if e.Finished {
			line = fmt.Sprintf("cell %d: %d-%d, team %d takes it", e.RoundNr, e.Points1, e.Points2, e.Winner)
		} else {
			line = fmt.Sprintf("cell %d tied at %d, replay", e.RoundNr, e.Points1)
		}
	default:
		return
	}
	m.eventLog = append(m.eventLog, line)
	if len(m.eventLog) > 5 {
		m.eventLog = m.eventLog[len(m.eventLog)-5:]
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch m.screen {
	case party.ScreenConfig:
		return m.updateConfig(msg)
	case party.ScreenNames:
		return m.updateNames(msg)
	case party.ScreenMain:
		return m.updateMain(msg)
	case party.ScreenSing:
		return m.updateSing(msg)
	}
	return m, nil
}

func (m *Model) updateConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.call(m.machine.Back())
		if m.screen == party.ScreenPartyHub {
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
	case "left", "h":
		if m.gridChoice > 0 {
			m.gridChoice--
		}
		m.cfg.GridSize = party.SupportedGridSizes[m.gridChoice]
	case "right", "l":
		if m.gridChoice < len(party.SupportedGridSizes)-1 {
			m.gridChoice++
		}
		m.cfg.GridSize = party.SupportedGridSizes[m.gridChoice]
	case "enter":
		if m.call(m.machine.Next()) {
			m.nameField = 0
			m.nameInput.SetValue(m.cfg.TeamNames[0])
			m.nameInput.Focus()
		}
	}
	return m, nil
}

func (m *Model) updateNames(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.call(m.machine.Back())
		return m, nil
	case "tab":
		m.commitName()
		m.nameField = 1 - m.nameField
		m.nameInput.SetValue(m.cfg.TeamNames[m.nameField])
		return m, nil
	case "enter":
		m.commitName()
		if m.nameField == 0 {
			m.nameField = 1
			m.nameInput.SetValue(m.cfg.TeamNames[1])
			return m, nil
		}
		if m.call(m.machine.Next()) {
			m.cursor = 0
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) commitName() {
	if v := strings.TrimSpace(m.nameInput.Value()); v != "" {
		m.cfg.TeamNames[m.nameField] = v
	}
}

func (m *Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.machine.Tournament()
	dim := gridDim(t.GridSize)

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)
	case "esc", "b":
		m.call(m.machine.Back())
	case "left", "h":
		if m.cursor%dim > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor%dim < dim-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor >= dim {
			m.cursor -= dim
		}
	case "down", "j":
		if m.cursor+dim < t.GridSize {
			m.cursor += dim
		}
	case "enter":
		if t.Complete() {
			return m, nil
		}
		if !m.call(m.machine.SelectRound(m.cursor + 1)) {
			return m, nil
		}
		if m.call(m.machine.Next()) && m.screen == party.ScreenSing {
			m.singPhase = phaseChooseSong
			m.songCursor = 0
		}
	}
	return m, nil
}

func (m *Model) updateSing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.singPhase == phaseChooseSong {
		return m.updateChooseSong(msg)
	}
	return m.updateScore(msg)
}

func (m *Model) updateChooseSong(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := m.songChoices()

	switch msg.String() {
	case "up", "k":
		if m.songCursor > 0 {
			m.songCursor--
		}
	case "down", "j":
		if m.songCursor < len(choices)-1 {
			m.songCursor++
		}
	case "1", "2":
		team := int(msg.String()[0] - '1')
		if _, err := m.machine.UseRandomJoker(team); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.enterScorePhase()
	case "3", "4":
		team := int(msg.String()[0] - '3')
		if err := m.machine.UseRetryJoker(team); err != nil {
			m.errMsg = err.Error()
		}
	case "enter":
		if len(choices) == 0 {
			return m, nil
		}
		if m.call(m.machine.SongSelected(choices[m.songCursor])) {
			m.enterScorePhase()
		}
	}
	return m, nil
}

func (m *Model) enterScorePhase() {
	m.singPhase = phaseScore
	m.scoreInput.SetValue("")
	m.scoreInput.Focus()
}

func (m *Model) updateScore(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		p1, p2, err := parseScores(m.scoreInput.Value())
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.session.SetResult(0, p1)
		m.session.SetResult(1, p2)
		m.call(m.machine.LeavingHighscore())
		return m, nil
	}

	var cmd tea.Cmd
	m.scoreInput, cmd = m.scoreInput.Update(msg)
	return m, cmd
}

// songChoices lists the selectable songs: on a tie replay the cell's kept
// song leads the list even though it has left the pool.
func (m *Model) songChoices() []int {
	t := m.machine.Tournament()
	round := t.CurrentRound()

	var choices []int
	if round != nil && round.SongID != 0 {
		choices = append(choices, round.SongID)
	}
	choices = append(choices, t.SongPool...)
	return choices
}

// call runs a machine operation and routes its error to the footer. Returns
// true when the operation succeeded.
func (m *Model) call(err error) bool {
	if err != nil {
		m.errMsg = err.Error()
		m.logger.Warn("operation failed", "error", err)
		return false
	}
	return true
}

func parseScores(input string) (float64, float64, error) {
	fields := strings.Fields(strings.ReplaceAll(input, ",", " "))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("enter two scores, got %d values", len(fields))
	}
	p1, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad score %q", fields[0])
	}
	p2, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad score %q", fields[1])
	}
	return p1, p2, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" Sing-Off "))
	b.WriteString("\n\n")

	switch m.screen {
	case party.ScreenConfig:
		b.WriteString(m.viewConfig())
	case party.ScreenNames:
		b.WriteString(m.viewNames())
	case party.ScreenMain:
		b.WriteString(m.viewMain())
	case party.ScreenSing:
		b.WriteString(m.viewSing())
	}

	if len(m.eventLog) > 0 {
		b.WriteString("\n")
		for _, line := range m.eventLog {
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewConfig() string {
	var b strings.Builder
	b.WriteString("Grid size:  ")
	for i, size := range party.SupportedGridSizes {
		dim := gridDim(size)
		label := fmt.Sprintf("%dx%d", dim, dim)
		if i == m.gridChoice {
			b.WriteString(SongCursorStyle.Render("[" + label + "]"))
		} else {
			b.WriteString(SongStyle.Render(" " + label + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Songs available: %d\n", m.lib.Catalog.CountAll()))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("←/→ grid size • Enter to continue • q to leave"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewNames() string {
	var b strings.Builder
	label := Team1Style
	if m.nameField == 1 {
		label = Team2Style
	}
	b.WriteString(fmt.Sprintf("Team 1: %s\n", Team1Style.Render(m.cfg.TeamNames[0])))
	b.WriteString(fmt.Sprintf("Team 2: %s\n\n", Team2Style.Render(m.cfg.TeamNames[1])))
	b.WriteString(label.Render(fmt.Sprintf("Editing team %d name", m.nameField+1)))
	b.WriteString("\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("Tab to switch team • Enter to confirm • Esc back"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewMain() string {
	t := m.machine.Tournament()
	dim := gridDim(t.GridSize)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d : %d %s",
		Team1Style.Render(m.cfg.TeamNames[0]), t.Wins(1),
		t.Wins(2), Team2Style.Render(m.cfg.TeamNames[1])))
	b.WriteString(WarningStyle.Render(fmt.Sprintf("   team %d picks", t.ActingTeam+1)))
	b.WriteString("\n\n")

	for row := 0; row < dim; row++ {
		cells := make([]string, dim)
		for col := 0; col < dim; col++ {
			i := row*dim + col
			cells[col] = m.renderCell(i, &t.Rounds[i])
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Songs in pool: %d   Jokers (random/retry): %d/%d vs %d/%d\n",
		len(t.SongPool),
		t.NumJokerRandom[0], t.NumJokerRetry[0],
		t.NumJokerRandom[1], t.NumJokerRetry[1]))

	if t.Complete() {
		b.WriteString("\n")
		b.WriteString(m.renderFinalResult(t))
		b.WriteString("\n")
	} else {
		b.WriteString(InfoStyle.Render("Arrows to move • Enter to sing the cell • b back • q quit"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderCell(i int, round *party.Round) string {
	label := strconv.Itoa(i + 1)
	switch {
	case i == m.cursor && !round.Finished:
		return CellCursorStyle.Render(label)
	case round.Winner == 1:
		return CellTeam1Style.Render("X")
	case round.Winner == 2:
		return CellTeam2Style.Render("O")
	default:
		return CellOpenStyle.Render(label)
	}
}

func (m *Model) renderFinalResult(t *party.Tournament) string {
	w1, w2 := t.Wins(1), t.Wins(2)
	switch {
	case w1 > w2:
		return SuccessStyle.Render(fmt.Sprintf("%s win %d-%d!", m.cfg.TeamNames[0], w1, w2))
	case w2 > w1:
		return SuccessStyle.Render(fmt.Sprintf("%s win %d-%d!", m.cfg.TeamNames[1], w2, w1))
	default:
		return WarningStyle.Render(fmt.Sprintf("Dead heat at %d-%d!", w1, w2))
	}
}

func (m *Model) viewSing() string {
	t := m.machine.Tournament()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Cell %d\n\n", t.SingRoundNr))

	if m.singPhase == phaseChooseSong {
		choices := m.songChoices()
		round := t.CurrentRound()
		for i, id := range choices {
			line := fmt.Sprintf("song %d", id)
			if song, ok := m.lib.Catalog.ByID(id); ok {
				line = fmt.Sprintf("%s — %s", song.Title, song.Artist)
			}
			if round != nil && round.SongID == id {
				line += " (replay)"
			}
			if i == m.songCursor {
				b.WriteString(SongCursorStyle.Render("> " + line))
			} else {
				b.WriteString(SongStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("↑/↓ choose • Enter to sing • 1/2 random joker • 3/4 retry joker"))
		b.WriteString("\n")
		return b.String()
	}

	if song, ok := m.lib.Catalog.ByID(m.session.CurrentSong()); ok {
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("Now singing: %s — %s", song.Title, song.Artist)))
		b.WriteString("\n\n")
	}
	b.WriteString("Enter the scores:\n")
	b.WriteString(m.scoreInput.View())
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("Enter to confirm"))
	b.WriteString("\n")
	return b.String()
}

func gridDim(gridSize int) int {
	switch gridSize {
	case 16:
		return 4
	case 25:
		return 5
	default:
		return 3
	}
}
