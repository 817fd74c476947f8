// Package guards gates navigation on authentication and role membership.
// A guard never enforces anything the server does not re-check; it exists so
// the UI can redirect before issuing doomed requests.
package guards

import (
	"context"
	"net/url"
	"strings"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
)

// AuthState is the slice of the auth store the guards consume.
type AuthState interface {
	IsAuthenticated() bool
	Initialized() bool
	CheckAuth(ctx context.Context) error
	Role() models.UserRole
}

// Navigator is the UI router guards redirect through.
type Navigator interface {
	Push(path string)
}

const (
	pathHome           = "/"
	pathLogin          = "/login"
	pathAdminDashboard = "/admin/dashboard"
)

// adminRouteRoles is the static per-route role allowlist for the admin area.
var adminRouteRoles = map[string][]models.UserRole{
	"/admin/dashboard":    {models.RoleAdmin, models.RoleEditor, models.RoleModerator},
	"/admin/users":        {models.RoleAdmin},
	"/admin/products":     {models.RoleAdmin, models.RoleEditor},
	"/admin/categories":   {models.RoleAdmin, models.RoleEditor},
	"/admin/transactions": {models.RoleAdmin, models.RoleModerator},
	"/admin/audit":        {models.RoleAdmin, models.RoleModerator},
	"/admin/storage":      {models.RoleAdmin, models.RoleEditor},
	"/admin/analytics":    {models.RoleAdmin},
	"/admin/settings":     {models.RoleAdmin},
}

type Guard struct {
	auth  AuthState
	nav   Navigator
	notes *notify.Notifier
}

func New(auth AuthState, nav Navigator, notes *notify.Notifier) *Guard {
	return &Guard{auth: auth, nav: nav, notes: notes}
}

// ensureInitialized lazily hydrates the session; guards can run before the
// app shell has called CheckAuth.
func (g *Guard) ensureInitialized(ctx context.Context) {
	if !g.auth.Initialized() {
		_ = g.auth.CheckAuth(ctx)
	}
}

func (g *Guard) redirect(path string) {
	if g.nav != nil {
		g.nav.Push(path)
	}
}

// RequireAuth admits authenticated users; everyone else is sent to login
// with the original destination preserved.
func (g *Guard) RequireAuth(ctx context.Context, to string) error {
	g.ensureInitialized(ctx)

	if !g.auth.IsAuthenticated() {
		g.notes.Error("Please log in to access this page")
		g.redirect(pathLogin + "?redirect=" + url.QueryEscape(to))
		return api.ErrAuthRequired
	}
	return nil
}

// RequireGuest bounces authenticated users off guest-only pages: staff to
// the admin dashboard, customers home.
func (g *Guard) RequireGuest(ctx context.Context) error {
	g.ensureInitialized(ctx)

	if g.auth.IsAuthenticated() {
		if g.auth.Role().IsStaff() {
			g.redirect(pathAdminDashboard)
		} else {
			g.redirect(pathHome)
		}
		return &api.Error{Status: 403, Message: "Already authenticated"}
	}
	return nil
}

// RequireRole admits users whose role is in the allowlist. Denied customers
// go home; denied staff go to the admin dashboard.
func (g *Guard) RequireRole(ctx context.Context, to string, allowed ...models.UserRole) error {
	if err := g.RequireAuth(ctx, to); err != nil {
		return err
	}

	role := g.auth.Role()
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}

	g.notes.Error("You do not have permission to access this page")
	if role == models.RoleCustomer || !role.IsStaff() {
		g.redirect(pathHome)
	} else {
		g.redirect(pathAdminDashboard)
	}
	return &api.Error{Status: 403, Message: "Insufficient role"}
}

// RequireAdminRoute resolves the allowlist for an /admin path and applies
// RequireRole. Unknown admin paths fall back to the staff-wide allowlist.
func (g *Guard) RequireAdminRoute(ctx context.Context, path string) error {
	return g.RequireRole(ctx, path, rolesFor(path)...)
}

// Allowed reports whether a role may reach the given admin path; used to
// build navigation menus without triggering redirects.
func Allowed(role models.UserRole, path string) bool {
	for _, r := range rolesFor(path) {
		if role == r {
			return true
		}
	}
	return false
}

func rolesFor(path string) []models.UserRole {
	if roles, ok := adminRouteRoles[normalize(path)]; ok {
		return roles
	}
	return []models.UserRole{models.RoleAdmin, models.RoleEditor, models.RoleModerator}
}

// normalize maps detail routes like /admin/transactions/42 onto their
// collection route and trims trailing slashes.
func normalize(path string) string {
	path = strings.TrimSuffix(path, "/")
	if _, ok := adminRouteRoles[path]; ok {
		return path
	}
	if i := strings.LastIndex(path, "/"); i > len("/admin") {
		if _, ok := adminRouteRoles[path[:i]]; ok {
			return path[:i]
		}
	}
	return path
}
