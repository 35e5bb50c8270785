package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldstation/admin-console/internal/core/domain"
	"github.com/fieldstation/admin-console/internal/core/ports"
)

// dashboardView is the admin user-management table. Deletes require an
// explicit confirmation, and a successful delete reloads the listing from
// the server; rows are never removed locally.
type dashboardView struct {
	session   ports.SessionService
	directory ports.DirectoryService

	table   table.Model
	users   []domain.UserRecord
	loading bool
	busy    bool
	message string
	failed  bool

	confirming  bool
	pendingID   int64
	pendingName string
}

func newDashboardView(session ports.SessionService, directory ports.DirectoryService) *dashboardView {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Username", Width: 16},
		{Title: "First Name", Width: 14},
		{Title: "Last Name", Width: 14},
		{Title: "Role", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return &dashboardView{
		session:   session,
		directory: directory,
		table:     t,
		loading:   true,
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadUsers()
}

func (v *dashboardView) loadUsers() tea.Cmd {
	directory := v.directory
	return func() tea.Msg {
		users, out := directory.Users(context.Background())
		return usersLoadedMsg{users: users, out: out}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		v.loading = false
		if !msg.out.OK() {
			v.message = msg.out.Message
			v.failed = true
			return v, nil
		}
		v.users = msg.users
		rows := make([]table.Row, 0, len(msg.users))
		for _, u := range msg.users {
			rows = append(rows, table.Row{
				strconv.FormatInt(u.ID, 10),
				u.Username,
				u.FirstName,
				u.LastName,
				string(u.Role),
			})
		}
		v.table.SetRows(rows)
		return v, nil

	case deleteDoneMsg:
		v.busy = false
		v.message = msg.out.Message
		v.failed = !msg.out.OK()
		if msg.out.OK() {
			// The cache was invalidated; this fetch goes to the server.
			v.loading = true
			return v, v.loadUsers()
		}
		return v, nil

	case tea.KeyMsg:
		if v.busy || v.loading {
			return v, nil
		}
		if v.confirming {
			return v.updateConfirm(msg)
		}
		switch msg.String() {
		case "d", "delete":
			return v.startConfirm()
		case "r":
			// Refresh must reach the server, not the cache.
			v.directory.Invalidate()
			v.loading = true
			return v, v.loadUsers()
		case "ctrl+l", "q":
			return v, v.logout()
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *dashboardView) startConfirm() (view, tea.Cmd) {
	row := v.table.SelectedRow()
	if row == nil {
		return v, nil
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return v, nil
	}
	v.confirming = true
	v.pendingID = id
	v.pendingName = row[1]
	return v, nil
}

func (v *dashboardView) updateConfirm(msg tea.KeyMsg) (view, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirming = false
		v.busy = true
		v.message = ""
		id := v.pendingID
		directory := v.directory
		return v, func() tea.Msg {
			return deleteDoneMsg{out: directory.DeleteUser(context.Background(), id)}
		}
	case "n", "N", "esc":
		v.confirming = false
		return v, nil
	}
	return v, nil
}

func (v *dashboardView) logout() tea.Cmd {
	session := v.session
	return func() tea.Msg {
		return logoutDoneMsg{out: session.Logout(context.Background())}
	}
}

func (v *dashboardView) View() string {
	header := titleStyle.Render("Admin Dashboard — User Management")

	if v.loading {
		return lipgloss.JoinVertical(lipgloss.Left, header, "Loading users...")
	}

	var status string
	switch {
	case v.confirming:
		status = errorStyle.Render(fmt.Sprintf("Delete user %q (id %d)? y/n", v.pendingName, v.pendingID))
	case v.busy:
		status = "Deleting..."
	default:
		status = messageLine(v.message, v.failed)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		status,
		v.table.View(),
		helpStyle.Render("↑/↓ select · d delete · r refresh · ctrl+l logout · ctrl+c quit"),
	)
}
