package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldstation/admin-console/internal/core/domain"
	"github.com/fieldstation/admin-console/internal/core/ports"
)

// loginView is the unauthenticated sign-in form. Mounting it fetches a fresh
// anti-forgery token; a fetch failure is swallowed here (the server will
// reject the submit and that error is what the user sees).
type loginView struct {
	session ports.SessionService

	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	message  string
	failed   bool
}

func newLoginView(session ports.SessionService) *loginView {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	return &loginView{session: session, username: username, password: password}
}

func (v *loginView) Init() tea.Cmd {
	session := v.session
	return func() tea.Msg {
		return mountedMsg{err: session.Mount(context.Background())}
	}
}

func (v *loginView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		// Kept silent on this view; the registration view differs.
		return v, nil

	case loginDoneMsg:
		v.busy = false
		v.message = msg.out.Message
		v.failed = !msg.out.OK()
		if msg.out.OK() {
			// Never retain the password once it has been accepted.
			v.password.SetValue("")
		}
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			return v, v.setFocus(v.focus + 1)
		case "shift+tab", "up":
			return v, v.setFocus(v.focus - 1)
		case "ctrl+r":
			return v, func() tea.Msg { return navigateMsg{route: domain.RouteRegister} }
		case "enter":
			if v.focus < 1 {
				return v, v.setFocus(v.focus + 1)
			}
			return v, v.submit()
		}
	}

	return v, v.updateInputs(msg)
}

func (v *loginView) submit() tea.Cmd {
	v.busy = true
	v.message = ""
	creds := domain.Credentials{
		Username: strings.TrimSpace(v.username.Value()),
		Password: v.password.Value(),
	}
	session := v.session
	return func() tea.Msg {
		return loginDoneMsg{out: session.Login(context.Background(), creds)}
	}
}

func (v *loginView) setFocus(focus int) tea.Cmd {
	if focus < 0 {
		focus = 1
	}
	if focus > 1 {
		focus = 0
	}
	v.focus = focus
	if focus == 0 {
		v.password.Blur()
		return v.username.Focus()
	}
	v.username.Blur()
	return v.password.Focus()
}

func (v *loginView) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds [2]tea.Cmd
	v.username, cmds[0] = v.username.Update(msg)
	v.password, cmds[1] = v.password.Update(msg)
	return tea.Batch(cmds[0], cmds[1])
}

func (v *loginView) View() string {
	button := "[ Login ]"
	if v.busy {
		button = "Logging in..."
	}
	style := buttonStyle
	if v.busy {
		style = buttonDisabledStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Login"),
		messageLine(v.message, v.failed),
		fieldLabel("Username", v.focus == 0),
		v.username.View(),
		fieldLabel("Password", v.focus == 1),
		v.password.View(),
		"",
		style.Render(button),
		helpStyle.Render("enter submit · tab next field · ctrl+r register · ctrl+c quit"),
	)
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return focusedLabelStyle.Render(label)
	}
	return labelStyle.Render(label)
}
