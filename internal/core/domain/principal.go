package domain

import "strings"

// Role classifies an authenticated principal. The set is closed; anything the
// server sends outside it is treated as unknown and routed to the home view.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleBiologist Role = "biologist"
	RoleGuest     Role = "guest"
)

// Route names a view the console can navigate to.
type Route string

const (
	RouteHome               Route = "/"
	RouteLogin              Route = "/login"
	RouteRegister           Route = "/register"
	RouteAdminDashboard     Route = "/admin-dashboard"
	RouteBiologistDashboard Route = "/biologist-dashboard"
	RouteGuestDashboard     Route = "/guest-dashboard"
)

// dashboardRoutes maps each known role to its post-login destination.
var dashboardRoutes = map[Role]Route{
	RoleAdmin:     RouteAdminDashboard,
	RoleBiologist: RouteBiologistDashboard,
	RoleGuest:     RouteGuestDashboard,
}

// DashboardRoute returns the post-login destination for a role. Roles are
// matched case-insensitively; unknown roles land on the home route.
func DashboardRoute(r Role) Route {
	if route, ok := dashboardRoutes[Role(strings.ToLower(string(r)))]; ok {
		return route
	}
	return RouteHome
}

// Principal is the authenticated identity for the current session. Field
// names follow the server's wire format; the same shape is persisted to the
// local state file.
type Principal struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Role      Role   `json:"roletype"`
}
