package viz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pathviz/internal/anim"
	"github.com/san-kum/pathviz/internal/client"
	"github.com/san-kum/pathviz/internal/config"
	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/interact"
	"github.com/san-kum/pathviz/internal/logging"
	"github.com/san-kum/pathviz/internal/metrics"
)

// ErrLocked is logged when an edit or command arrives during a run.
var ErrLocked = errors.New("viz: run in progress")

const (
	// boardTop and boardLeft locate cell (0,0) on screen.
	boardTop  = 3
	boardLeft = 2

	frameInterval = time.Second / 60
	historyLimit  = 30
)

// Runner performs one algorithm run. *client.Client satisfies it.
type Runner interface {
	Run(ctx context.Context, g grid.Grid, algo client.Algorithm) (client.Result, error)
}

type runResultMsg struct {
	id   uint64
	grid grid.Grid
	algo client.Algorithm
	res  client.Result
}

type runFailedMsg struct {
	id  uint64
	err error
}

type frameMsg struct {
	id uint64
	t  time.Time
}

// App is the Bubble Tea model owning the grid, the interaction controller
// and the replay overlay.
type App struct {
	runner Runner
	ctx    context.Context
	log    *slog.Logger
	now    func() time.Time

	grid  grid.Grid
	ctrl  interact.Controller
	marks anim.Marks

	lastCell   grid.Coord
	hasLast    bool
	playback   *anim.Playback
	runID      uint64
	runStarted time.Time
	frame      int
	waiting    bool

	algo       client.Algorithm
	speedMs    int
	pathFactor int
	theme      Theme
	palette    Palette
	styles     Styles

	errMsg   string
	summary  *metrics.Summary
	history  []float64
	showHelp bool
	help     string

	width, height int
}

type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithContext bounds every service call; cancelling it aborts a pending run.
func WithContext(ctx context.Context) Option {
	return func(a *App) { a.ctx = ctx }
}

// WithClock replaces time.Now for run start times.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp builds the visualizer from a validated configuration.
func NewApp(cfg *config.Config, runner Runner, opts ...Option) (App, error) {
	g, err := cfg.NewGrid()
	if err != nil {
		return App{}, err
	}
	theme := GetTheme(cfg.Theme)
	a := App{
		runner:     runner,
		ctx:        context.Background(),
		log:        logging.NewNop(),
		now:        time.Now,
		grid:       g,
		ctrl:       interact.New(),
		marks:      anim.NewMarks(),
		algo:       cfg.GetAlgorithm(),
		speedMs:    config.ClampSpeed(cfg.SpeedMs),
		pathFactor: cfg.PathFactor,
		theme:      theme,
		palette:    NewPalette(theme),
		styles:     NewStyles(theme),
		width:      80,
		height:     24,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a, nil
}

func (m App) Grid() grid.Grid                 { return m.grid }
func (m App) Controller() interact.Controller { return m.ctrl }
func (m App) Marks() anim.Marks               { return m.marks }
func (m App) Algorithm() client.Algorithm     { return m.algo }
func (m App) SpeedMs() int                    { return m.speedMs }
func (m App) Err() string                     { return m.errMsg }
func (m App) Summary() *metrics.Summary       { return m.summary }

// Cells returns the current per-cell render state.
func (m App) Cells() [][]Category { return Cells(m.grid, m.marks) }

func (m App) Init() tea.Cmd { return tea.SetWindowTitle("pathviz") }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case runResultMsg:
		return m.startPlayback(msg)
	case runFailedMsg:
		return m.runFailed(msg), nil
	case frameMsg:
		return m.advance(msg)
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		if m.showHelp && m.help == "" {
			m.help = renderHelp(m.width)
		}
		return m, nil
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.palette = NewPalette(m.theme)
		m.styles = NewStyles(m.theme)
		return m, nil
	}

	if m.ctrl.IsLocked() {
		m.log.Debug("command rejected", "key", msg.String(), "error", ErrLocked)
		return m, nil
	}
	switch msg.String() {
	case "v", "enter":
		return m.visualize()
	case "c":
		m = m.clear()
	case "a", "tab":
		m.algo = m.algo.Next()
	case "A", "shift+tab":
		m.algo = m.algo.Prev()
	case "+", "=":
		m.speedMs = config.ClampSpeed(m.speedMs - config.SpeedStep)
	case "-", "_":
		m.speedMs = config.ClampSpeed(m.speedMs + config.SpeedStep)
	}
	return m, nil
}

func (m App) handleMouse(msg tea.MouseMsg) App {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		c, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			return m
		}
		m.lastCell, m.hasLast = c, true
		return m.edit(c, m.ctrl.PointerDown)
	case tea.MouseActionMotion:
		c, ok := m.cellAt(msg.X, msg.Y)
		// motion repeats inside a cell; only entering a new cell counts
		if !ok || (m.hasLast && c == m.lastCell) {
			return m
		}
		m.lastCell, m.hasLast = c, true
		return m.edit(c, m.ctrl.PointerEnter)
	case tea.MouseActionRelease:
		m.ctrl = m.ctrl.PointerUp()
		m.hasLast = false
	}
	return m
}

func (m App) edit(c grid.Coord, transition func(grid.Grid, int, int) (interact.Controller, grid.Grid)) App {
	before := m.grid.IsWall(c.Row, c.Col)
	m.ctrl, m.grid = transition(m.grid, c.Row, c.Col)
	if _, marked := m.marks[c]; marked && m.grid.IsWall(c.Row, c.Col) != before {
		// an edited cell drops any replay styling
		next := maps.Clone(m.marks)
		delete(next, c)
		m.marks = next
	}
	return m
}

// PointerDown, PointerEnter and PointerUp drive the controller with grid
// coordinates instead of screen positions.
func (m App) PointerDown(row, col int) App {
	c := grid.Coord{Row: row, Col: col}
	m.lastCell, m.hasLast = c, true
	return m.edit(c, m.ctrl.PointerDown)
}

func (m App) PointerEnter(row, col int) App {
	c := grid.Coord{Row: row, Col: col}
	m.lastCell, m.hasLast = c, true
	return m.edit(c, m.ctrl.PointerEnter)
}

func (m App) PointerUp() App {
	m.ctrl = m.ctrl.PointerUp()
	m.hasLast = false
	return m
}

func (m App) cellAt(x, y int) (grid.Coord, bool) {
	if x < boardLeft || y < boardTop {
		return grid.Coord{}, false
	}
	c := grid.Coord{Row: y - boardTop, Col: (x - boardLeft) / cellWidth}
	return c, m.grid.InBounds(c)
}

// Clear resets the grid and all replay styling. It is rejected while a run
// is in progress.
func (m App) Clear() App {
	if m.ctrl.IsLocked() {
		m.log.Debug("clear rejected", "error", ErrLocked)
		return m
	}
	return m.clear()
}

func (m App) clear() App {
	m.grid = m.grid.Reset()
	m.marks = anim.NewMarks()
	m.errMsg = ""
	m.summary = nil
	m.log.Debug("grid cleared")
	return m
}

// Visualize locks the controller and dispatches one run.
func (m App) Visualize() (App, tea.Cmd) {
	if m.ctrl.IsLocked() {
		m.log.Debug("visualize rejected", "error", ErrLocked)
		return m, nil
	}
	return m.visualize()
}

func (m App) visualize() (App, tea.Cmd) {
	m.ctrl = m.ctrl.Lock()
	m.hasLast = false
	m.runID++
	m.marks = anim.NewMarks()
	m.errMsg = ""
	m.summary = nil
	m.waiting = true
	m.playback = nil

	id, g, algo, runner, ctx := m.runID, m.grid, m.algo, m.runner, m.ctx
	m.log.Info("run dispatched", "id", id, "algorithm", algo, "walls", g.WallCount(), "speed_ms", m.speedMs)

	run := func() tea.Msg {
		res, err := runner.Run(ctx, g, algo)
		if err != nil {
			return runFailedMsg{id: id, err: err}
		}
		return runResultMsg{id: id, grid: g, algo: algo, res: res}
	}
	return m, tea.Batch(run, m.nextFrame())
}

func (m App) runFailed(msg runFailedMsg) App {
	if msg.id != m.runID {
		return m
	}
	m.waiting = false
	m.ctrl = m.ctrl.Unlock()

	var rf *client.RunFailedError
	if errors.As(msg.err, &rf) {
		m.errMsg = "Failed to run algorithm: " + rf.Message
	} else {
		m.errMsg = "Failed to run algorithm: " + msg.err.Error()
	}
	m.log.Warn("run failed", "id", msg.id, "error", msg.err)
	return m
}

func (m App) startPlayback(msg runResultMsg) (App, tea.Cmd) {
	if msg.id != m.runID || !m.ctrl.IsLocked() {
		return m, nil
	}
	m.waiting = false
	tl := anim.Plan(msg.res.Visited, msg.res.Path, msg.grid.Start(), msg.grid.Finish(),
		time.Duration(m.speedMs)*time.Millisecond, m.pathFactor)
	m.playback = anim.Start(tl, msg.id)
	m.runStarted = m.now()

	s := metrics.Summarize(msg.grid, msg.algo, msg.res)
	m.summary = &s
	m.history = append(m.history, float64(s.Visited))
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	m.log.Info("playback started", "id", msg.id, "visited", s.Visited, "path", s.PathLength, "done", tl.Done)

	// the frame loop started at dispatch keeps running; apply what is due now
	m = m.step(m.runStarted)
	return m, nil
}

func (m App) advance(msg frameMsg) (App, tea.Cmd) {
	if msg.id != m.runID || !m.ctrl.IsLocked() {
		return m, nil
	}
	m.frame++
	if m.playback != nil {
		m = m.step(msg.t)
	}
	if !m.ctrl.IsLocked() {
		return m, nil
	}
	return m, m.nextFrame()
}

// step applies every replay step due at now and releases the lock when the
// timeline is complete.
func (m App) step(now time.Time) App {
	elapsed := now.Sub(m.runStarted)
	if due := m.playback.Advance(elapsed); len(due) > 0 {
		next := maps.Clone(m.marks)
		next.Apply(due...)
		m.marks = next
	}
	if m.playback.Finished(elapsed) {
		m.log.Info("playback finished", "id", m.playback.ID(), "elapsed", elapsed)
		m.ctrl = m.ctrl.Unlock()
	}
	return m
}

func (m App) nextFrame() tea.Cmd {
	id := m.runID
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg{id: id, t: t} })
}

func (m App) View() string {
	var b strings.Builder

	b.WriteString("  " + GradientText("PATHVIZ", m.theme.Primary, m.theme.Secondary) + "  " +
		m.styles.Subtle.Render("pathfinding visualizer") + "\n")
	b.WriteString("  " + m.viewControls() + "\n\n")

	if m.showHelp {
		b.WriteString(m.help)
		return b.String()
	}

	board := RenderBoard(m.Cells(), m.palette)
	for _, line := range strings.Split(board, "\n") {
		b.WriteString(strings.Repeat(" ", boardLeft) + line + "\n")
	}
	b.WriteString("\n  " + m.viewStatus() + "\n")
	if chart := m.viewHistory(); chart != "" {
		b.WriteString("\n  " + m.styles.Separator(m.grid.Width()*cellWidth) + "\n" + chart + "\n")
	}
	return b.String()
}

func (m App) viewControls() string {
	label := func(key, text string) string {
		if m.ctrl.IsLocked() {
			return m.styles.Disabled.Render(key + " " + text)
		}
		return m.styles.Key.Render(key) + m.styles.Subtle.Render(" "+text)
	}
	parts := []string{
		m.styles.Label.Render("algorithm ") + m.styles.Value.Render(m.algo.Label()),
		m.styles.Label.Render("speed ") + m.styles.Value.Render(fmt.Sprintf("%dms", m.speedMs)),
		label("v", "visualize"),
		label("c", "clear"),
		label("a", "algorithm"),
		label("+/-", "speed"),
		m.styles.Key.Render("?") + m.styles.Subtle.Render(" help"),
	}
	return strings.Join(parts, "  ")
}

func (m App) viewStatus() string {
	var parts []string
	switch {
	case m.waiting:
		parts = append(parts, m.styles.Running.Render(Spinner(m.frame)+" waiting for service"))
	case m.playback != nil && m.ctrl.IsLocked():
		p := m.playback.Progress(m.now().Sub(m.runStarted))
		parts = append(parts, m.styles.Running.Render("● running ")+m.styles.ProgressBar(p, 20))
	default:
		parts = append(parts, m.styles.Idle.Render("○ "+m.ctrl.State.String()))
	}
	parts = append(parts, m.styles.Label.Render("walls ")+m.styles.Value.Render(fmt.Sprint(m.grid.WallCount())))

	if s := m.summary; s != nil {
		parts = append(parts,
			m.styles.Label.Render("visited ")+m.styles.Value.Render(fmt.Sprint(s.Visited)),
			m.styles.Label.Render("path ")+m.styles.Value.Render(fmt.Sprint(s.PathLength)))
		if !m.ctrl.IsLocked() {
			if s.Found {
				parts = append(parts,
					m.styles.Label.Render("coverage ")+m.styles.Value.Render(fmt.Sprintf("%.0f%%", s.Coverage*100)),
					m.styles.Label.Render("efficiency ")+m.styles.Value.Render(fmt.Sprintf("%.2f", s.Efficiency)))
			} else {
				parts = append(parts, m.styles.Error.Render("no path found"))
			}
		}
	}
	line := strings.Join(parts, "  ")
	if m.errMsg != "" {
		line += "\n  " + m.styles.Error.Render(m.errMsg)
	}
	return line
}

func (m App) viewHistory() string {
	if len(m.history) < 2 {
		return ""
	}
	return asciigraph.Plot(m.history,
		asciigraph.Height(4),
		asciigraph.Width(40),
		asciigraph.Offset(4),
		asciigraph.Precision(0),
		asciigraph.Caption("visited nodes per run"))
}

// Run starts the program on the terminal until the user quits or ctx ends.
func Run(ctx context.Context, app App) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
