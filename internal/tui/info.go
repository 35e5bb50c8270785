package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldstation/admin-console/internal/core/ports"
)

// infoView covers the non-admin destinations: the biologist and guest
// dashboards and the home fallback for unrecognized roles. It only greets
// the principal and offers logout.
type infoView struct {
	session ports.SessionService
	title   string
	busy    bool
}

func newInfoView(session ports.SessionService, title string) *infoView {
	return &infoView{session: session, title: title}
}

func (v *infoView) Init() tea.Cmd {
	return nil
}

func (v *infoView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case logoutDoneMsg:
		v.busy = false
		return v, nil
	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "ctrl+l", "q":
			v.busy = true
			session := v.session
			return v, func() tea.Msg {
				return logoutDoneMsg{out: session.Logout(context.Background())}
			}
		}
	}
	return v, nil
}

func (v *infoView) View() string {
	greeting := "Welcome."
	if p, ok := v.session.Principal(); ok {
		greeting = fmt.Sprintf("Welcome, %s %s (%s).", p.FirstName, p.LastName, p.Role)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(v.title),
		greeting,
		helpStyle.Render("ctrl+l logout · ctrl+c quit"),
	)
}
