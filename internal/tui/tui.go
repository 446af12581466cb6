package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

const (
	// BetStep is how much +/- change the bet by
	BetStep    = 10
	defaultBet = 10
	tableWidth = 36
)

type screen int

const (
	startScreen screen = iota
	tableScreen
)

// Options configures a new Model
type Options struct {
	Name     string // skips the start screen when set
	Bet      int
	TestMode bool
}

// Model is the Bubble Tea model for a blackjack table. All calls into the
// game happen from Update, which Bubble Tea runs on a single goroutine.
type Model struct {
	game   *game.Game
	logger *log.Logger

	// UI components
	nameInput   textinput.Model
	logViewport viewport.Model

	// State
	screen      screen
	playerName  string
	bet         int
	errMsg      string
	gameLog     []string
	quitting    bool
	focusedPane int // 0 = table, 1 = log

	// Dimensions
	width  int
	height int

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewModel creates a model driving g. g must have no players seated yet;
// the player is seated when a name is entered.
func NewModel(g *game.Game, logger *log.Logger, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 24
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	bet := opts.Bet
	if bet <= 0 {
		bet = defaultBet
	}

	m := &Model{
		game:        g,
		logger:      logger.WithPrefix("tui"),
		nameInput:   ti,
		logViewport: viewport.New(10, 5),
		screen:      startScreen,
		bet:         bet,
		testMode:    opts.TestMode,
	}
	NewBridge(g, m)

	if name := strings.TrimSpace(opts.Name); name != "" {
		m.join(name)
	}
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	if m.screen == startScreen {
		return textinput.Blink
	}
	return nil
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		m.resizeLog()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.screen == startScreen {
			return m.updateStart(msg)
		}
		return m.updateTable(msg)
	}

	return m, nil
}

func (m *Model) updateStart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.errMsg = "Please enter your name"
			return m, nil
		}
		m.join(name)
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focusedPane == 1 {
		switch msg.String() {
		case "tab":
			m.focusedPane = 0
		case "q":
			m.quitting = true
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.errMsg = ""
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.focusedPane = 1
	case "h":
		if !m.game.Hit() {
			m.errMsg = "No round in progress, press n to deal"
		}
	case "s":
		if !m.game.Stay() {
			m.errMsg = "No round in progress, press n to deal"
		}
	case "n":
		m.deal()
	case "+", "=":
		m.changeBet(BetStep)
	case "-", "_":
		m.changeBet(-BetStep)
	}
	return m, nil
}

// join seats the player and deals the first round
func (m *Model) join(name string) {
	if _, err := m.game.AddPlayer(name); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.playerName = name
	m.screen = tableScreen
	m.errMsg = ""
	m.nameInput.Blur()
	m.logger.Info("Player joined", "name", name)
	m.deal()
}

// deal stakes the current bet and starts a new round. It refuses while a
// round is unsettled so a bad hand cannot be thrown back for free.
func (m *Model) deal() {
	if m.game.State() != game.RoundOver {
		m.errMsg = "Finish the round first: h to hit, s to stay"
		return
	}
	p := m.player()
	if p.Chips() == 0 {
		m.errMsg = "You're out of chips, press q to quit"
		return
	}
	if m.bet > p.Chips() {
		m.bet = p.Chips()
	}
	if err := m.game.PlaceBet(m.playerName, m.bet); err != nil {
		m.logger.Warn("Bet rejected", "bet", m.bet, "error", err)
		switch {
		case errors.Is(err, game.ErrInsufficientFunds):
			m.errMsg = fmt.Sprintf("Not enough chips for a $%d bet", m.bet)
		default:
			m.errMsg = err.Error()
		}
		return
	}
	m.game.StartNewRound()
}

func (m *Model) changeBet(delta int) {
	if m.game.State() != game.RoundOver {
		m.errMsg = "Bets can only change between rounds"
		return
	}
	bet := m.bet + delta
	if bet < BetStep {
		bet = BetStep
	}
	if chips := m.player().Chips(); bet > chips {
		bet = max(chips, BetStep)
	}
	m.bet = bet
}

func (m *Model) player() *game.Player {
	return m.game.Player(m.playerName)
}

// Bet returns the stake that will be placed on the next deal
func (m *Model) Bet() int { return m.bet }

// Error returns the message currently shown to the player, if any
func (m *Model) Error() string { return m.errMsg }

// OnStartScreen reports whether the name entry screen is showing
func (m *Model) OnStartScreen() bool { return m.screen == startScreen }

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == startScreen {
		return m.renderStart()
	}

	table := TableStyle.Width(tableWidth).Render(m.renderTable())

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262"))
	if m.focusedPane == 1 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("BLACKJACK"),
		lipgloss.JoinHorizontal(lipgloss.Top, table, logPane),
		m.renderHelp(),
	)
}

func (m *Model) renderStart() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("BLACKJACK"))
	b.WriteString("\n\n")
	b.WriteString("Enter your name to sit down:\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Enter to start • Esc to quit"))
	return b.String()
}

// renderTable draws the dealer and player hands with the status line
func (m *Model) renderTable() string {
	var b strings.Builder
	dealer := m.game.Dealer().Hand()
	p := m.player()
	hand := p.Hand()

	b.WriteString(HandInfoStyle.Render("Dealer"))
	b.WriteString("\n")
	if dealer.Len() > 0 {
		fmt.Fprintf(&b, "%s  %d\n", formatCards(dealer.Cards()), dealer.Value())
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(HandInfoStyle.Render(p.Name()))
	b.WriteString("\n")
	if hand.Len() > 0 {
		value := fmt.Sprintf("%d", hand.Value())
		if hand.IsSoft() && !hand.IsBust() {
			value = "soft " + value
		}
		fmt.Fprintf(&b, "%s  %s\n", formatCards(hand.Cards()), value)
	} else {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Chips: $%d  Bet: $%d\n\n", p.Chips(), m.stake())

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Wins: %d | Losses: %d", m.game.Wins(), m.game.Losses())))
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errMsg))
	}
	return b.String()
}

// stake is the chips on the table this round, or the next bet between rounds
func (m *Model) stake() int {
	if bet := m.player().CurrentBet(); bet > 0 {
		return bet
	}
	if m.game.State() == game.RoundOver {
		for _, r := range m.game.Results() {
			if r.Player == m.playerName {
				return r.Bet
			}
		}
	}
	return m.bet
}

func (m *Model) renderStatus() string {
	switch m.game.State() {
	case game.Playing:
		return ActionsStyle.Render(fmt.Sprintf("%s's turn", m.game.CurrentPlayer().Name()))
	case game.DealerTurn:
		return ActionsStyle.Render("Dealer's turn")
	}

	if m.game.Round() == 0 {
		return ActionsStyle.Render("Press n to deal")
	}
	for _, r := range m.game.Results() {
		if r.Player != m.playerName {
			continue
		}
		switch r.Outcome {
		case game.OutcomeBlackjack:
			return SuccessStyle.Render("Round over! Blackjack!")
		case game.OutcomeWin:
			return SuccessStyle.Render("Round over! You win!")
		case game.OutcomePush:
			return WarningStyle.Render("Round over! Push.")
		default:
			if r.Bust {
				return ErrorStyle.Render("Round over! You bust.")
			}
			return ErrorStyle.Render("Round over! Dealer wins.")
		}
	}
	return ActionsStyle.Render("Round over!")
}

func (m *Model) renderHelp() string {
	if m.focusedPane == 1 {
		return InfoStyle.Render("Log focused: ↑↓ scroll • PgUp/PgDn page • Tab back to table")
	}
	if m.game.State() == game.Playing {
		return InfoStyle.Render("h hit • s stay • Tab scroll log • q quit")
	}
	return InfoStyle.Render(fmt.Sprintf("n deal ($%d) • +/- change bet • Tab scroll log • q quit", m.bet))
}

func (m *Model) resizeLog() {
	width := m.width - tableWidth - 8
	height := m.height - 6
	m.logViewport.Width = max(width, 10)
	m.logViewport.Height = max(height, 5)
	m.logViewport.GotoBottom()
}

// AddLogEntry adds an entry to the round log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}
