// Package tui is the console's view layer: it renders forms and tables and
// invokes the session and directory services, which own all authentication
// state. Views withhold duplicate submits while a request is in flight; the
// services assume that and do not enforce single-flight themselves.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/fieldstation/admin-console/internal/core/domain"
	"github.com/fieldstation/admin-console/internal/core/ports"
)

// view is one screen of the console. Update returns the (possibly replaced)
// view plus a command, mirroring bubbletea's model contract.
type view interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (view, tea.Cmd)
	View() string
}

// App is the root model. It owns routing: any outcome message carrying a
// navigation directive replaces the current view, honoring delayed
// directives with a timer.
type App struct {
	session   ports.SessionService
	directory ports.DirectoryService
	logger    zerolog.Logger

	route   domain.Route
	current view
	width   int
	height  int
}

func New(session ports.SessionService, directory ports.DirectoryService, logger zerolog.Logger) App {
	a := App{session: session, directory: directory, logger: logger}

	// A persisted principal resumes straight into its dashboard; otherwise
	// the console starts anonymous on the login view.
	route := domain.RouteLogin
	if p, ok := session.Principal(); ok {
		route = domain.DashboardRoute(p.Role)
	}
	a.route = route
	a.current = a.buildView(route)
	return a
}

// Run starts the terminal UI and blocks until the user quits.
func Run(session ports.SessionService, directory ports.DirectoryService, logger zerolog.Logger) error {
	p := tea.NewProgram(New(session, directory, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd {
	return a.current.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case navigateMsg:
		a.logger.Debug().Str("route", string(msg.route)).Msg("navigating")
		a.route = msg.route
		a.current = a.buildView(msg.route)
		return a, a.current.Init()
	}

	var cmd tea.Cmd
	a.current, cmd = a.current.Update(msg)

	if nav := outcomeNav(msg); nav != nil {
		return a, tea.Batch(cmd, navigateCmd(*nav))
	}
	return a, cmd
}

func (a App) View() string {
	return frameStyle.Render(a.current.View())
}

func (a App) buildView(route domain.Route) view {
	switch route {
	case domain.RouteLogin:
		return newLoginView(a.session)
	case domain.RouteRegister:
		return newRegisterView(a.session)
	case domain.RouteAdminDashboard:
		return newDashboardView(a.session, a.directory)
	case domain.RouteBiologistDashboard:
		return newInfoView(a.session, "Biologist Dashboard")
	case domain.RouteGuestDashboard:
		return newInfoView(a.session, "Guest Dashboard")
	default:
		return newInfoView(a.session, "Field Station Console")
	}
}

// outcomeNav extracts a navigation directive from any operation outcome.
func outcomeNav(msg tea.Msg) *ports.Navigation {
	switch m := msg.(type) {
	case loginDoneMsg:
		return m.out.Nav
	case registerDoneMsg:
		return m.out.Nav
	case logoutDoneMsg:
		return m.out.Nav
	case usersLoadedMsg:
		return m.out.Nav
	case deleteDoneMsg:
		return m.out.Nav
	}
	return nil
}

// navigateCmd turns a directive into a command, waiting out the directive's
// delay first so the user sees the message that preceded it.
func navigateCmd(nav ports.Navigation) tea.Cmd {
	route := nav.Route
	if nav.After > 0 {
		return tea.Tick(nav.After, func(time.Time) tea.Msg {
			return navigateMsg{route: route}
		})
	}
	return func() tea.Msg {
		return navigateMsg{route: route}
	}
}
