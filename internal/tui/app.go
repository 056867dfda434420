package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/ladder/internal/config"
	"github.com/jask/ladder/internal/database/repository"
	"github.com/jask/ladder/internal/scrollsync"
	"github.com/jask/ladder/internal/service"
	"github.com/jask/ladder/internal/standings"
)

// horizontalStep is how many cells one scroll keypress moves the statistics
// region.
const horizontalStep = 4

// chromeRows is the vertical space taken by everything that is not a table
// row: title bar, column header, status line, footer.
const chromeRows = 5

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services
	tz       *time.Location
	keys     keyMap

	state  appState
	width  int
	height int
	ready  bool
	status string

	seasons    []repository.Season
	season     *repository.Season
	seasonList list.Model
	rows       []standings.Row
	matchCount int

	// The standings table is two independently scrollable surfaces (column
	// header strip, body strip) locked to one shared offset store. The
	// sticky rank/club column renders outside the surfaces and never moves
	// horizontally.
	store      *scrollsync.OffsetStore
	header     *scrollsync.Surface
	body       *scrollsync.Surface
	cursor     int
	rowOffset  int
	lastScroll int // side channel: last user-driven horizontal offset

	// import flow
	importPath string
	lastImport *service.IngestResult
}

type Repos struct {
	Seasons *repository.SeasonRepo
	Teams   *repository.TeamRepo
	Matches *repository.MatchRepo
}

type Services struct {
	Ingest *service.IngestService
}

type appState string

const (
	viewStandings appState = "standings"
	viewSeasons   appState = "seasons"
	viewImport    appState = "import"
)

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	LeftEdge key.Binding
	RightEnd key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Seasons  key.Binding
	Import   key.Binding
	Reload   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/l", "scroll stats")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		LeftEdge: key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("0/$", "edges")),
		RightEnd: key.NewBinding(key.WithKeys("end", "$")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", "move")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		Seasons:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "seasons")),
		Import:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	a := &App{
		ctx:        ctx,
		cfg:        cfg,
		repos:      repos,
		services:   services,
		tz:         tz,
		keys:       newKeyMap(),
		state:      viewStandings,
		importPath: "results.csv",
	}
	// One store shared by exactly the surfaces in the group. Surfaces only
	// know the store, never each other.
	a.store = scrollsync.NewOffsetStore()
	a.header = scrollsync.NewSurface(a.store, 0, nil)
	a.body = scrollsync.NewSurface(a.store, 0, func(off int) { a.lastScroll = off })

	l := list.New(nil, seasonDelegate{}, 0, 0)
	l.Title = "Seasons"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	a.seasonList = l
	return a
}

func (a *App) Init() tea.Cmd {
	return a.loadSeasons()
}

func (a *App) loadSeasons() tea.Cmd {
	return func() tea.Msg {
		if a.repos.Seasons == nil {
			return seasonsMsg(nil)
		}
		seasons, err := a.repos.Seasons.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return seasonsMsg(seasons)
	}
}

func (a *App) loadStandings() tea.Cmd {
	return func() tea.Msg {
		if a.season == nil || a.repos.Teams == nil || a.repos.Matches == nil {
			return standingsMsg{}
		}
		teams, err := a.repos.Teams.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		matches, err := a.repos.Matches.ListBySeason(a.ctx, a.season.ID)
		if err != nil {
			return errMsg{err}
		}
		st := make([]standings.Team, len(teams))
		for i, t := range teams {
			st[i] = standings.Team{ID: t.ID, Name: t.Name, Short: t.ShortName}
		}
		sm := make([]standings.Match, len(matches))
		for i, m := range matches {
			sm[i] = standings.Match{
				ID: m.ID, HomeID: m.HomeTeamID, AwayID: m.AwayTeamID,
				HomeGoals: m.HomeGoals, AwayGoals: m.AwayGoals, PlayedAt: m.PlayedAt,
			}
		}
		rules := standings.Rules{PointsWin: a.cfg.League.PointsWin, PointsDraw: a.cfg.League.PointsDraw}
		return standingsMsg{rows: standings.Compute(st, sm, rules), matches: len(sm)}
	}
}

func (a *App) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if a.season == nil {
			return errMsg{fmt.Errorf("no season selected")}
		}
		if a.services.Ingest == nil {
			return errMsg{fmt.Errorf("ingest not configured")}
		}
		f, err := os.Open(path)
		if err != nil {
			return errMsg{err}
		}
		defer f.Close()
		res, err := a.services.Ingest.ImportCSV(a.ctx, f, a.season.ID, a.tz)
		if err != nil {
			return errMsg{err}
		}
		return ingestDoneMsg{Result: res}
	}
}

// messages

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type statusMsg string

type seasonsMsg []repository.Season

type standingsMsg struct {
	rows    []standings.Row
	matches int
}

type ingestDoneMsg struct {
	Result service.IngestResult
}

// Update handles one message and then reconciles both table surfaces, so the
// header strip converges on the body strip's offset (or vice versa) within
// one pass of whatever changed.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := a.handleMsg(msg)
	cmds = append(cmds, a.syncTable()...)
	return a, tea.Batch(cmds...)
}

func (a *App) handleMsg(msg tea.Msg) []tea.Cmd {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.ready = true
		a.seasonList.SetSize(m.Width-4, max(4, m.Height-6))
		statsW := a.statsViewportWidth()
		return []tea.Cmd{a.header.SetWidth(statsW), a.body.SetWidth(statsW)}

	case scrollsync.ReleaseGuardMsg:
		m.Surface.ReleaseGuard()
		return nil

	case tea.KeyMsg:
		switch a.state {
		case viewSeasons:
			return a.handleSeasonsKey(m)
		case viewImport:
			return a.handleImportKey(m)
		default:
			return a.handleStandingsKey(m)
		}

	case seasonsMsg:
		a.seasons = []repository.Season(m)
		items := make([]list.Item, len(a.seasons))
		for i, s := range a.seasons {
			items[i] = seasonItem{s: s, dateFormat: a.cfg.UI.DateFormat}
		}
		a.seasonList.SetItems(items)
		if a.season == nil && len(a.seasons) > 0 {
			s := a.seasons[0]
			a.season = &s
			return []tea.Cmd{a.loadStandings()}
		}
		return nil

	case standingsMsg:
		a.rows = m.rows
		a.matchCount = m.matches
		if a.cursor >= len(a.rows) {
			a.cursor = 0
			a.rowOffset = 0
		}
		return nil

	case statusMsg:
		a.status = string(m)
		return nil

	case errMsg:
		a.status = "error: " + m.Error()
		return nil

	case ingestDoneMsg:
		a.lastImport = &m.Result
		summary := fmt.Sprintf("imported %d, skipped %d", m.Result.Imported, m.Result.Skipped)
		if len(m.Result.Errors) > 0 {
			summary += fmt.Sprintf(", errors %d (see import view)", len(m.Result.Errors))
		}
		a.status = summary
		a.state = viewStandings
		return []tea.Cmd{a.loadStandings()}
	}
	return nil
}

func (a *App) handleStandingsKey(m tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Quit):
		return []tea.Cmd{tea.Quit}
	case key.Matches(m, a.keys.Left):
		return []tea.Cmd{a.body.Scroll(-horizontalStep)}
	case key.Matches(m, a.keys.Right):
		return []tea.Cmd{a.body.Scroll(horizontalStep)}
	case key.Matches(m, a.keys.LeftEdge):
		return []tea.Cmd{a.body.ScrollTo(0)}
	case key.Matches(m, a.keys.RightEnd):
		return []tea.Cmd{a.body.ScrollTo(a.body.Viewport().MaxOffset())}
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.PageUp):
		a.cursor = max(0, a.cursor-a.visibleRows())
	case key.Matches(m, a.keys.PageDown):
		a.cursor = min(len(a.rows)-1, a.cursor+a.visibleRows())
	case key.Matches(m, a.keys.Seasons):
		a.state = viewSeasons
		a.status = ""
	case key.Matches(m, a.keys.Import):
		a.state = viewImport
		a.status = ""
	case key.Matches(m, a.keys.Reload):
		a.status = "reloading..."
		return []tea.Cmd{a.loadSeasons(), a.loadStandings()}
	}
	a.ensureCursorVisible()
	return nil
}

func (a *App) handleSeasonsKey(m tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Quit):
		return []tea.Cmd{tea.Quit}
	case key.Matches(m, a.keys.Back):
		a.state = viewStandings
		return nil
	}
	if m.Type == tea.KeyEnter {
		if item, ok := a.seasonList.SelectedItem().(seasonItem); ok {
			s := item.s
			a.season = &s
			a.state = viewStandings
			a.cursor, a.rowOffset = 0, 0
			a.status = "season: " + s.Name
			return []tea.Cmd{a.loadStandings()}
		}
		return nil
	}
	var cmd tea.Cmd
	a.seasonList, cmd = a.seasonList.Update(m)
	return []tea.Cmd{cmd}
}

func (a *App) handleImportKey(m tea.KeyMsg) []tea.Cmd {
	switch m.Type {
	case tea.KeyCtrlC:
		return []tea.Cmd{tea.Quit}
	case tea.KeyEsc:
		a.state = viewStandings
		a.status = ""
		return nil
	case tea.KeyEnter:
		a.status = "importing..."
		return []tea.Cmd{a.importCmd(a.importPath)}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.importPath) > 0 {
			a.importPath = a.importPath[:len(a.importPath)-1]
		}
	case tea.KeySpace:
		a.importPath += " "
	case tea.KeyRunes:
		a.importPath += string(m.Runes)
	}
	return nil
}

// syncTable rebuilds both surfaces' content for the current pass (sizing
// before offset reconciliation) and pulls each one onto the shared offset.
func (a *App) syncTable() []tea.Cmd {
	if !a.ready {
		return nil
	}
	return []tea.Cmd{
		a.header.Sync(a.headerContent()),
		a.body.Sync(a.bodyContent()),
	}
}

// statsViewportWidth is the room left for the scrollable statistics region
// after the sticky column group and its divider.
func (a *App) statsViewportWidth() int {
	return max(10, a.width-stickyWidth()-3)
}

func (a *App) visibleRows() int {
	return max(1, a.height-chromeRows)
}

func (a *App) ensureCursorVisible() {
	if a.cursor < a.rowOffset {
		a.rowOffset = a.cursor
	}
	if bottom := a.rowOffset + a.visibleRows() - 1; a.cursor > bottom {
		a.rowOffset = a.cursor - a.visibleRows() + 1
	}
	if a.rowOffset < 0 {
		a.rowOffset = 0
	}
}

// windowRows returns the slice of rows currently on screen.
func (a *App) windowRows() []standings.Row {
	if len(a.rows) == 0 {
		return nil
	}
	end := min(len(a.rows), a.rowOffset+a.visibleRows())
	start := min(a.rowOffset, end)
	return a.rows[start:end]
}

func (a *App) rowLineStyle(r standings.Row) lipgloss.Style {
	if r.Rank-1 == a.cursor {
		return cursorRowStyle
	}
	zone := standings.ZoneFor(r.Rank, len(a.rows), a.cfg.League.PromotionSpots, a.cfg.League.RelegationSpots)
	switch zone {
	case standings.ZonePromotion:
		return promotionStyle
	case standings.ZoneRelegation:
		return relegationStyle
	default:
		return rowStyle
	}
}

func (a *App) headerContent() string {
	return columnHeaderStyle.Render(titlesLine(scrollColumns()))
}

func (a *App) bodyContent() string {
	cols := scrollColumns()
	rows := a.windowRows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = a.rowLineStyle(r).Render(rowLine(cols, r))
	}
	if len(lines) == 0 {
		return ""
	}
	return joinLines(lines)
}
