package console

import (
	"context"
	"errors"
	"net/http"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// Console owns a session store and the API client bound to it. It is the
// single consumer of the adapter's session-invalidated signal: on the first
// rejection it clears the store and redirects to login, and concurrent
// rejections collapse into that one teardown.
type Console struct {
	store    *Store
	client   *Client
	redirect func()
}

// NewConsole hydrates the session from storage and wires the client to it.
// redirectToLogin runs on teardown (logout or credential rejection); nil is
// accepted for headless use.
func NewConsole(baseURL string, storage Storage, redirectToLogin func()) (*Console, error) {
	store, err := NewStore(storage)
	if err != nil {
		return nil, err
	}

	c := &Console{store: store, redirect: redirectToLogin}
	c.client = NewClient(baseURL, store, c.onSessionInvalidated)
	return c, nil
}

// Store exposes the session store for predicates and direct reads.
func (c *Console) Store() *Store {
	return c.store
}

// Client exposes the bearer-injecting adapter for resource calls.
func (c *Console) Client() *Client {
	return c.client
}

// onSessionInvalidated is the adapter hook. Store.Clear reports whether this
// call actually ended a session, so only one of any number of concurrent
// 401 reactions performs the redirect.
func (c *Console) onSessionInvalidated() {
	ended, err := c.store.Clear()
	if err != nil || !ended {
		return
	}
	if c.redirect != nil {
		c.redirect()
	}
}

type loginPayload struct {
	DNI      string `json:"dni"`
	Password string `json:"password"`
}

type loginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login exchanges DNI + password for a session and reports the view to
// present. Empty input and every server-side rejection collapse to
// ErrInvalidCredentials; nothing discloses whether the DNI exists.
func (c *Console) Login(ctx context.Context, dni, password string) (ViewVariant, error) {
	if dni == "" || password == "" {
		return ViewUnrecognized, domain.ErrInvalidCredentials
	}

	var result loginResult
	err := c.client.DoPublic(ctx, http.MethodPost, "/login", loginPayload{DNI: dni, Password: password}, &result)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return ViewUnrecognized, domain.ErrInvalidCredentials
		}
		return ViewUnrecognized, err
	}
	if result.Token == "" || result.User == nil {
		return ViewUnrecognized, domain.ErrInvalidCredentials
	}

	if err := c.store.Set(result.Token, result.User); err != nil {
		return ViewUnrecognized, err
	}
	return DispatchView(result.User.Role), nil
}

// Logout ends the session. The server notify is best effort: the local
// session is cleared whatever the server answers, and logging out twice is
// a no-op.
func (c *Console) Logout(ctx context.Context) error {
	if c.store.IsAuthenticated() {
		// Ignore the response; a dead server must not keep us logged in.
		_ = c.client.Do(ctx, http.MethodPost, "/logout", nil, nil)
	}
	_, err := c.store.Clear()
	return err
}

type verifyRecoveryPayload struct {
	DNI      string `json:"dni"`
	Telefono string `json:"telefono"`
}

type verifyRecoveryResult struct {
	Token string `json:"token"`
}

// VerifyRecovery is recovery step one: identity check by DNI + phone,
// yielding the short-lived reset credential for step two.
func (c *Console) VerifyRecovery(ctx context.Context, dni, telefono string) (string, error) {
	if dni == "" || telefono == "" {
		return "", domain.ErrInvalidCredentials
	}

	var result verifyRecoveryResult
	err := c.client.DoPublic(ctx, http.MethodPost, "/recuperar-password/verificar",
		verifyRecoveryPayload{DNI: dni, Telefono: telefono}, &result)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	return result.Token, nil
}

type resetPasswordPayload struct {
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ResetPassword is recovery step two. The length and equality checks run
// locally before any request so a typo never burns the single-use token.
func (c *Console) ResetPassword(ctx context.Context, token, password, confirmation string) error {
	if len(password) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	if password != confirmation {
		return domain.ErrPasswordMismatch
	}

	err := c.client.DoPublic(ctx, http.MethodPost, "/recuperar-password/cambiar",
		resetPasswordPayload{Token: token, Password: password, PasswordConfirmation: confirmation}, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return domain.ErrInvalidResetToken
		}
		return err
	}
	return nil
}

// Guard is the route guard: it re-checks session presence on every call and
// redirects to login when there is none. Role logic stays out of it.
func (c *Console) Guard() bool {
	if c.store.IsAuthenticated() {
		return true
	}
	if c.redirect != nil {
		c.redirect()
	}
	return false
}

// Dashboard reports the view for the current session, ViewUnrecognized when
// logged out.
func (c *Console) Dashboard() ViewVariant {
	user := c.store.User()
	if !c.store.IsAuthenticated() || user == nil {
		return ViewUnrecognized
	}
	return DispatchView(user.Role)
}
