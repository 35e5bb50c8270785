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

const tokenInitFailedMessage = "Failed to initialize security token. Please refresh the page."

var registerFields = [4]string{"Username", "Password (min 8 characters)", "First Name", "Last Name"}

// registerView is the sign-up form. On success all fields are cleared, the
// server's message is shown, and the console moves to the login view after a
// fixed delay (the root model owns the timer).
type registerView struct {
	session ports.SessionService

	inputs  [4]textinput.Model
	focus   int
	busy    bool
	message string
	failed  bool
}

func newRegisterView(session ports.SessionService) *registerView {
	v := &registerView{session: session}
	for i := range v.inputs {
		ti := textinput.New()
		ti.Placeholder = registerFields[i]
		ti.CharLimit = 64
		if i == 1 {
			ti.EchoMode = textinput.EchoPassword
		}
		v.inputs[i] = ti
	}
	v.inputs[0].Focus()
	return v
}

func (v *registerView) Init() tea.Cmd {
	session := v.session
	return func() tea.Msg {
		return mountedMsg{err: session.Mount(context.Background())}
	}
}

func (v *registerView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case mountedMsg:
		if msg.err != nil {
			v.message = tokenInitFailedMessage
			v.failed = true
		}
		return v, nil

	case registerDoneMsg:
		v.busy = false
		v.message = msg.out.Message
		v.failed = !msg.out.OK()
		if msg.out.OK() {
			for i := range v.inputs {
				v.inputs[i].SetValue("")
			}
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
		case "esc":
			return v, func() tea.Msg { return navigateMsg{route: domain.RouteLogin} }
		case "enter":
			if v.focus < len(v.inputs)-1 {
				return v, v.setFocus(v.focus + 1)
			}
			return v, v.submit()
		}
	}

	return v, v.updateInputs(msg)
}

func (v *registerView) submit() tea.Cmd {
	v.busy = true
	v.message = ""
	reg := domain.Registration{
		Username:  strings.TrimSpace(v.inputs[0].Value()),
		Password:  v.inputs[1].Value(),
		FirstName: strings.TrimSpace(v.inputs[2].Value()),
		LastName:  strings.TrimSpace(v.inputs[3].Value()),
	}
	session := v.session
	return func() tea.Msg {
		return registerDoneMsg{out: session.Register(context.Background(), reg)}
	}
}

func (v *registerView) setFocus(focus int) tea.Cmd {
	n := len(v.inputs)
	focus = (focus + n) % n
	v.inputs[v.focus].Blur()
	v.focus = focus
	return v.inputs[focus].Focus()
}

func (v *registerView) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(v.inputs))
	for i := range v.inputs {
		v.inputs[i], cmds[i] = v.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (v *registerView) View() string {
	button := "[ Register ]"
	if v.busy {
		button = "Registering..."
	}
	style := buttonStyle
	if v.busy {
		style = buttonDisabledStyle
	}

	parts := []string{
		titleStyle.Render("Register"),
		messageLine(v.message, v.failed),
	}
	labels := [4]string{"Username", "Password", "First Name", "Last Name"}
	for i := range v.inputs {
		parts = append(parts, fieldLabel(labels[i], v.focus == i), v.inputs[i].View())
	}
	parts = append(parts,
		"",
		style.Render(button),
		helpStyle.Render("enter submit · tab next field · esc back to login · ctrl+c quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
