package tui

import (
	"github.com/fieldstation/admin-console/internal/core/domain"
	"github.com/fieldstation/admin-console/internal/core/ports"
)

// navigateMsg switches the console to another view. Emitted by the root
// model when an operation outcome carries a navigation directive.
type navigateMsg struct {
	route domain.Route
}

// mountedMsg reports the anti-forgery token acquisition that runs when an
// unauthenticated view mounts. A non-nil err is non-fatal: the view renders
// anyway and later submits fail server-side.
type mountedMsg struct {
	err error
}

type loginDoneMsg struct {
	out ports.Outcome
}

type registerDoneMsg struct {
	out ports.Outcome
}

type logoutDoneMsg struct {
	out ports.Outcome
}

type usersLoadedMsg struct {
	users []domain.UserRecord
	out   ports.Outcome
}

type deleteDoneMsg struct {
	out ports.Outcome
}
