package guards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
)

type stubAuth struct {
	authed      bool
	initialized bool
	role        models.UserRole
	checkCalls  int
}

func (s *stubAuth) IsAuthenticated() bool { return s.authed }
func (s *stubAuth) Initialized() bool     { return s.initialized }
func (s *stubAuth) Role() models.UserRole { return s.role }
func (s *stubAuth) CheckAuth(ctx context.Context) error {
	s.checkCalls++
	s.initialized = true
	return nil
}

type stubNav struct{ pushes []string }

func (n *stubNav) Push(path string) { n.pushes = append(n.pushes, path) }

func TestRequireAuthRedirectsAnonymousToLogin(t *testing.T) {
	auth := &stubAuth{initialized: true}
	nav := &stubNav{}
	g := New(auth, nav, notify.New())

	err := g.RequireAuth(context.Background(), "/cart")
	assert.ErrorIs(t, err, api.ErrAuthRequired)
	assert.Equal(t, []string{"/login?redirect=%2Fcart"}, nav.pushes)
}

func TestRequireAuthAdmitsAuthenticated(t *testing.T) {
	auth := &stubAuth{authed: true, initialized: true, role: models.RoleCustomer}
	nav := &stubNav{}
	g := New(auth, nav, notify.New())

	require.NoError(t, g.RequireAuth(context.Background(), "/orders"))
	assert.Empty(t, nav.pushes)
}

func TestRequireAuthHydratesLazily(t *testing.T) {
	auth := &stubAuth{}
	g := New(auth, &stubNav{}, notify.New())

	g.RequireAuth(context.Background(), "/cart")
	assert.Equal(t, 1, auth.checkCalls)

	g.RequireAuth(context.Background(), "/cart")
	assert.Equal(t, 1, auth.checkCalls, "hydration happens once")
}

func TestRequireGuest(t *testing.T) {
	t.Run("anonymous passes", func(t *testing.T) {
		g := New(&stubAuth{initialized: true}, &stubNav{}, notify.New())
		assert.NoError(t, g.RequireGuest(context.Background()))
	})

	t.Run("customer goes home", func(t *testing.T) {
		nav := &stubNav{}
		g := New(&stubAuth{authed: true, initialized: true, role: models.RoleCustomer}, nav, notify.New())
		assert.Error(t, g.RequireGuest(context.Background()))
		assert.Equal(t, []string{"/"}, nav.pushes)
	})

	t.Run("staff goes to the dashboard", func(t *testing.T) {
		nav := &stubNav{}
		g := New(&stubAuth{authed: true, initialized: true, role: models.RoleEditor}, nav, notify.New())
		assert.Error(t, g.RequireGuest(context.Background()))
		assert.Equal(t, []string{"/admin/dashboard"}, nav.pushes)
	})
}

func TestAdminRouteRoleMatrix(t *testing.T) {
	routes := []string{
		"/admin/dashboard",
		"/admin/users",
		"/admin/products",
		"/admin/categories",
		"/admin/transactions",
		"/admin/audit",
		"/admin/storage",
		"/admin/analytics",
		"/admin/settings",
	}

	editorAllowed := map[string]bool{
		"/admin/dashboard":  true,
		"/admin/products":   true,
		"/admin/categories": true,
		"/admin/storage":    true,
	}
	moderatorAllowed := map[string]bool{
		"/admin/dashboard":    true,
		"/admin/transactions": true,
		"/admin/audit":        true,
	}

	for _, route := range routes {
		assert.True(t, Allowed(models.RoleAdmin, route), "admin allowed everywhere: %s", route)
		assert.False(t, Allowed(models.RoleCustomer, route), "customer never allowed: %s", route)
		assert.Equal(t, editorAllowed[route], Allowed(models.RoleEditor, route), "editor on %s", route)
		assert.Equal(t, moderatorAllowed[route], Allowed(models.RoleModerator, route), "moderator on %s", route)
	}
}

func TestRequireAdminRouteDeniedCustomerGoesHome(t *testing.T) {
	nav := &stubNav{}
	g := New(&stubAuth{authed: true, initialized: true, role: models.RoleCustomer}, nav, notify.New())

	for _, route := range []string{"/admin/dashboard", "/admin/users", "/admin/audit"} {
		nav.pushes = nil
		err := g.RequireAdminRoute(context.Background(), route)
		require.Error(t, err, route)
		assert.Equal(t, []string{"/"}, nav.pushes, route)
	}
}

func TestRequireAdminRouteDeniedStaffGoesToDashboard(t *testing.T) {
	nav := &stubNav{}
	g := New(&stubAuth{authed: true, initialized: true, role: models.RoleEditor}, nav, notify.New())

	err := g.RequireAdminRoute(context.Background(), "/admin/users")
	require.Error(t, err)
	assert.Equal(t, []string{"/admin/dashboard"}, nav.pushes)
}

func TestRequireAdminRouteAllowed(t *testing.T) {
	nav := &stubNav{}
	g := New(&stubAuth{authed: true, initialized: true, role: models.RoleModerator}, nav, notify.New())

	require.NoError(t, g.RequireAdminRoute(context.Background(), "/admin/transactions"))
	assert.Empty(t, nav.pushes)
}

func TestNormalizeDetailRoutes(t *testing.T) {
	assert.True(t, Allowed(models.RoleModerator, "/admin/transactions/42"))
	assert.False(t, Allowed(models.RoleEditor, "/admin/transactions/42"))
	assert.True(t, Allowed(models.RoleEditor, "/admin/products/"))
}
