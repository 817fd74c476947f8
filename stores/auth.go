package stores

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/logger"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/session"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/validation"
)

// Auth owns the (user, token) session pair. The token survives restarts via
// the session cache; CheckAuth hydrates it once per process.
type Auth struct {
	client *api.Client
	cache  *session.Store
	notes  *notify.Notifier

	mu          sync.Mutex
	user        *models.User
	token       string
	loading     bool
	initialized bool
	err         string
}

func NewAuth(client *api.Client, cache *session.Store, notes *notify.Notifier) *Auth {
	return &Auth{client: client, cache: cache, notes: notes}
}

// IsAuthenticated reports whether both a user and a token are present.
func (a *Auth) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil && a.token != ""
}

// User returns a copy of the authenticated user, or nil.
func (a *Auth) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// Role returns the authenticated user's role. When only a cached token is
// available the role claim from the token is used as a hint.
func (a *Auth) Role() models.UserRole {
	a.mu.Lock()
	user, token := a.user, a.token
	a.mu.Unlock()

	if user != nil {
		return user.Role
	}
	if token != "" {
		if claims, err := session.ParseClaims(token); err == nil {
			return claims.Role
		}
	}
	return ""
}

func (a *Auth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *Auth) Initialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initialized
}

func (a *Auth) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Err returns the last recorded error message, empty when the previous
// action succeeded.
func (a *Auth) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *Auth) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}

func (a *Auth) setErr(msg string) {
	a.mu.Lock()
	a.err = msg
	a.mu.Unlock()
}

func (a *Auth) setAuth(ctx context.Context, res models.AuthResponse) {
	a.mu.Lock()
	u := res.User
	a.user = &u
	a.token = res.Token
	a.mu.Unlock()

	a.client.SetToken(res.Token)
	if a.cache != nil {
		if err := a.cache.Save(res.Token, &res.User); err != nil {
			logger.Warn(ctx, "failed to persist session", zap.Error(err))
		}
	}
}

func (a *Auth) clearAuth(ctx context.Context) {
	a.mu.Lock()
	a.user = nil
	a.token = ""
	a.mu.Unlock()

	a.client.ClearToken()
	if a.cache != nil {
		if err := a.cache.Clear(); err != nil {
			logger.Warn(ctx, "failed to clear cached session", zap.Error(err))
		}
	}
}

// Login authenticates against /login and installs the returned session.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	if fields := validation.Check(validation.LoginForm{Email: email, Password: password}); fields != nil {
		return &api.Error{Status: 422, Message: "Validation failed", Fields: fields}
	}

	a.setLoading(true)
	defer a.setLoading(false)
	a.setErr("")

	var res api.Response[models.AuthResponse]
	if err := a.client.Post(ctx, "/login", models.LoginRequest{Email: email, Password: password}, &res); err != nil {
		a.setErr(api.Humanize(err))
		return fmt.Errorf("login: %w", err)
	}

	a.setAuth(ctx, res.Data)
	a.mu.Lock()
	a.initialized = true
	a.mu.Unlock()
	return nil
}

// Register creates an account via /register and installs the returned session.
func (a *Auth) Register(ctx context.Context, form validation.RegisterForm) error {
	if fields := validation.Check(form); fields != nil {
		return &api.Error{Status: 422, Message: "Validation failed", Fields: fields}
	}

	a.setLoading(true)
	defer a.setLoading(false)
	a.setErr("")

	req := models.RegisterRequest{
		Name:                 form.Name,
		Email:                form.Email,
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	}
	var res api.Response[models.AuthResponse]
	if err := a.client.Post(ctx, "/register", req, &res); err != nil {
		a.setErr(api.Humanize(err))
		return fmt.Errorf("register: %w", err)
	}

	a.setAuth(ctx, res.Data)
	a.mu.Lock()
	a.initialized = true
	a.mu.Unlock()
	return nil
}

// Logout tells the server best-effort, then always clears the local session.
func (a *Auth) Logout(ctx context.Context) {
	a.setLoading(true)
	defer a.setLoading(false)

	if a.IsAuthenticated() {
		if err := a.client.Post(ctx, "/logout", nil, nil); err != nil {
			logger.Warn(ctx, "logout request failed", zap.Error(err))
		}
	}
	a.clearAuth(ctx)
}

// RefreshUser re-reads /user. A failure invalidates the whole session.
func (a *Auth) RefreshUser(ctx context.Context) error {
	if a.Token() == "" {
		return nil
	}

	a.setLoading(true)
	defer a.setLoading(false)

	var res api.Response[struct {
		User models.User `json:"user"`
	}]
	if err := a.client.Get(ctx, "/user", nil, &res); err != nil {
		a.clearAuth(ctx)
		return fmt.Errorf("refresh user: %w", err)
	}

	a.mu.Lock()
	u := res.Data.User
	a.user = &u
	a.mu.Unlock()
	return nil
}

// CheckAuth hydrates the session from the cache and validates it against the
// server. Idempotent after the first call.
func (a *Auth) CheckAuth(ctx context.Context) error {
	a.mu.Lock()
	if a.initialized {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.initialized = true
		a.mu.Unlock()
	}()

	if a.cache == nil {
		return nil
	}

	token, user, err := a.cache.Load()
	if err != nil {
		logger.Warn(ctx, "failed to load cached session", zap.Error(err))
		return nil
	}
	if token == "" {
		return nil
	}

	// A token carrying an elapsed exp claim cannot pass /user; evict it
	// without a round-trip. Opaque tokens fall through to server validation.
	if claims, perr := session.ParseClaims(token); perr == nil && claims.Expired() {
		logger.Info(ctx, "cached token expired")
		if cerr := a.cache.Clear(); cerr != nil {
			logger.Warn(ctx, "failed to clear cached session", zap.Error(cerr))
		}
		return nil
	}

	a.mu.Lock()
	a.token = token
	a.user = user
	a.mu.Unlock()
	a.client.SetToken(token)

	if err := a.RefreshUser(ctx); err != nil {
		// Stale or revoked token; RefreshUser already cleared it.
		logger.Info(ctx, "cached session rejected", zap.Error(err))
	}
	return nil
}

// UpdateProfile changes the authenticated user's own record.
func (a *Auth) UpdateProfile(ctx context.Context, form validation.ProfileForm) error {
	user := a.User()
	if user == nil {
		return api.ErrAuthRequired
	}
	if fields := validation.Check(form); fields != nil {
		return &api.Error{Status: 422, Message: "Validation failed", Fields: fields}
	}

	a.setLoading(true)
	defer a.setLoading(false)
	a.setErr("")

	req := models.UpdateUserRequest{Name: form.Name, Email: form.Email}
	var res api.Response[models.User]
	if err := a.client.Put(ctx, fmt.Sprintf("/users/%d", user.ID), req, &res); err != nil {
		a.setErr(api.Humanize(err))
		return fmt.Errorf("update profile: %w", err)
	}

	a.mu.Lock()
	u := res.Data
	a.user = &u
	a.mu.Unlock()
	a.notes.Success("Profile updated")
	return nil
}

// ChangePassword rotates the password of the authenticated user.
func (a *Auth) ChangePassword(ctx context.Context, form validation.ChangePasswordForm) error {
	if !a.IsAuthenticated() {
		return api.ErrAuthRequired
	}
	if fields := validation.Check(form); fields != nil {
		return &api.Error{Status: 422, Message: "Validation failed", Fields: fields}
	}

	a.setLoading(true)
	defer a.setLoading(false)
	a.setErr("")

	req := models.ChangePasswordRequest{
		CurrentPassword:         form.CurrentPassword,
		NewPassword:             form.NewPassword,
		NewPasswordConfirmation: form.NewPasswordConfirmation,
	}
	if err := a.client.Post(ctx, "/change-password", req, nil); err != nil {
		a.setErr(api.Humanize(err))
		return fmt.Errorf("change password: %w", err)
	}
	a.notes.Success("Password changed")
	return nil
}
