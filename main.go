package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"go-match/internal/analytics"
	"go-match/internal/clock"
	"go-match/internal/config"
	"go-match/internal/deck"
	"go-match/internal/game"
	"go-match/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

const (
	preloadDelay = 250 * time.Millisecond
	tickInterval = 500 * time.Millisecond
)

var (
	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	tileStyle    = lipgloss.NewStyle().Width(4).Align(lipgloss.Center).Border(lipgloss.RoundedBorder())
	overlayStyle = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("10"))
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Flip    key.Binding
	Reset   key.Binding
	Dismiss key.Binding
	CTA     key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Reset, k.CTA, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Flip, k.Reset, k.Dismiss, k.CTA, k.Quit},
	}
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Flip:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "flip")),
	Reset:   key.NewBinding(key.WithKeys("ctrl+r", "r"), key.WithHelp("ctrl+r", "replay")),
	Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close summary")),
	CTA:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "learn more")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
}

// TickMsg refreshes the elapsed time display.
type TickMsg time.Time

// fireMsg delivers a scheduled engine callback back onto the event loop.
type fireMsg clock.Handle

type preloadDoneMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func preloadCmd() tea.Cmd {
	return tea.Tick(preloadDelay, func(time.Time) tea.Msg {
		return preloadDoneMsg{}
	})
}

type LocalState struct {
	Session  *game.Session
	Recorder *analytics.Recorder
	Queue    *clock.Queue
	ClickURL string

	cursor  int
	loading bool
	overlay bool
	notice  string
	err     error
	help    help.Model
	spinner spinner.Model
}

func initialModel(opts config.Options, log zerolog.Logger) (*LocalState, error) {
	var symbols []string
	if len(opts.SymbolPaths) > 0 {
		loaded, err := game.LoadSymbols(opts.SymbolPaths)
		if err != nil {
			return nil, err
		}
		symbols = loaded
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	queue := clock.NewQueue()
	recorder := analytics.NewRecorder(log, clock.Real{})

	sess, err := game.NewSession(game.SessionOptions{
		Viewport:  opts.Viewport,
		Symbols:   symbols,
		Rand:      rand.New(rand.NewSource(seed)),
		Clock:     clock.Real{},
		Scheduler: queue,
		Listener:  recorder,
		Logger:    &log,
	})
	if err != nil {
		return nil, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &LocalState{
		Session:  sess,
		Recorder: recorder,
		Queue:    queue,
		ClickURL: opts.ClickURL,
		loading:  true,
		help:     help.New(),
		spinner:  sp,
	}, nil
}

func (s *LocalState) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, preloadCmd(), tickCmd())
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case preloadDoneMsg:
		s.loading = false
	case spinner.TickMsg:
		if s.loading {
			var cmd tea.Cmd
			s.spinner, cmd = s.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	case TickMsg:
		// Display only; elapsed time is read from the round timer.
		cmds = append(cmds, tickCmd())
	case fireMsg:
		s.Queue.Fire(clock.Handle(msg))
	case tea.WindowSizeMsg:
		s.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, keys.Reset):
			if err := s.Session.Reset(); err != nil {
				s.err = err
				return s, tea.Quit
			}
			s.cursor = 0
			s.overlay = false
			s.notice = ""
			s.loading = true
			cmds = append(cmds, s.spinner.Tick, preloadCmd())
		case key.Matches(msg, keys.Dismiss):
			s.overlay = false
		case key.Matches(msg, keys.CTA):
			s.exitClick()
		case s.loading:
			// input is held until the board is shown
		case key.Matches(msg, keys.Flip):
			if ev := s.Session.Select(s.cursor); ev.Kind == state.RoundComplete {
				s.overlay = true
			}
		default:
			s.moveCursor(msg)
		}
	}

	cmds = append(cmds, s.scheduledCmds()...)
	return s, tea.Batch(cmds...)
}

// scheduledCmds turns callbacks the engine scheduled during this update into
// timed messages, keeping every state change on the event loop.
func (s *LocalState) scheduledCmds() []tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range s.Queue.Drain() {
		h := t.Handle
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return fireMsg(h)
		}))
	}
	return cmds
}

func (s *LocalState) moveCursor(msg tea.KeyMsg) {
	cols := s.Session.Config().Columns
	n := len(s.Session.CurrentGame.State.Tiles)

	switch {
	case key.Matches(msg, keys.Left):
		if s.cursor%cols > 0 {
			s.cursor--
		}
	case key.Matches(msg, keys.Right):
		if s.cursor%cols < cols-1 && s.cursor+1 < n {
			s.cursor++
		}
	case key.Matches(msg, keys.Up):
		if s.cursor-cols >= 0 {
			s.cursor -= cols
		}
	case key.Matches(msg, keys.Down):
		if s.cursor+cols < n {
			s.cursor += cols
		}
	}
}

func (s *LocalState) exitClick() {
	click := s.Recorder.ExitClicked(s.Session.Snapshot(), s.ClickURL)
	if click.URL == "" || click.URL == "#" {
		s.notice = "No click-through URL configured."
		return
	}
	s.notice = "Visit " + click.URL
}

func (s *LocalState) RenderBoard() string {
	tiles := s.Session.Tiles()
	cols := s.Session.Config().Columns

	var rows []string
	for start := 0; start < len(tiles); start += cols {
		end := min(start+cols, len(tiles))
		var cells []string
		for i := start; i < end; i++ {
			cells = append(cells, s.renderTile(tiles[i], i == s.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *LocalState) renderTile(t deck.Tile, focused bool) string {
	style := tileStyle
	face := "?"

	switch t.State {
	case deck.Flipped:
		face = t.Value
		style = style.BorderForeground(lipgloss.Color("11"))
	case deck.Matched:
		face = t.Value
		style = style.BorderForeground(lipgloss.Color("10")).Faint(true)
	}

	if focused && !s.overlay {
		style = style.Reverse(true)
	}
	return style.Render(face)
}

func (s *LocalState) View() string {
	if s.loading {
		return fmt.Sprintf("\n  %s Loading...\n", s.spinner.View())
	}

	g := s.Session.CurrentGame
	snap := s.Session.Snapshot()

	status := fmt.Sprintf("Attempts: %d | Time: %ds | Pairs: %d/%d",
		snap.Attempts, g.Timer.Elapsed(), snap.PairsFound, g.Config.PairCount)
	display := scoreStyle.Render(status) + "\n" + s.RenderBoard()

	if s.overlay {
		display += "\n" + overlayStyle.Render(s.renderSummary())
	}
	if s.notice != "" {
		display += "\n" + boldStyle.Render(s.notice)
	}

	return display + "\n" + s.help.View(keys)
}

func (s *LocalState) renderSummary() string {
	sum := s.Session.CurrentGame.Summary()
	seconds := (sum.ElapsedMilliseconds + 500) / 1000

	var b strings.Builder
	b.WriteString(greenStyle.Render(fmt.Sprintf(
		"You matched %d pairs in %d attempts and %ds.", sum.PairsFound, sum.Attempts, seconds)))

	sc := s.Session.CurrentGame.Score
	if sc.GotBest() && sc.GetNumPrevious() > 0 {
		b.WriteString("\nNew best for this board! Top rounds:")
		for _, e := range sc.GetNScoreEntries(5) {
			b.WriteString(dimStyle.Render(fmt.Sprintf("\n  * %d attempts, %.1fs", e.Attempts, float64(e.ElapsedMs)/1000)))
		}
	}
	b.WriteString("\nPress ctrl+r to replay or c to learn more.")
	return b.String()
}

func newLogger(opts config.Options) (zerolog.Logger, func(), error) {
	if opts.LogFile == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(opts.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}
	log := zerolog.New(f).Level(opts.LogLevel).With().Timestamp().Logger()
	return log, func() { f.Close() }, nil
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}

	opts, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := newLogger(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	model, err := initialModel(opts, log)
	if err != nil {
		fmt.Printf("Error initializing model: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
	}
	if model.err != nil {
		fmt.Printf("Error: %v\n", model.err)
	}

	log.Info().Int("rounds", model.Session.Rounds).Int("completed", model.Recorder.Completed).Msg("exiting")
}
