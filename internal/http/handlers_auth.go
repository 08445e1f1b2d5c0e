package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/medtrack/medtrack-api/internal/domain/model"
	"github.com/medtrack/medtrack-api/internal/service"
)

// AuthServiceInterface defines the auth flow operations the handlers need.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, input service.BeginLoginInput) (string, error)
	HandleCallback(ctx context.Context, input service.CallbackInput) service.CallbackResult
	Validate(token string) (*domainauth.Claims, bool)
}

// UserServiceInterface defines the profile operations the handlers need.
type UserServiceInterface interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	SetPreferredValueType(ctx context.Context, userID int, valueTypeID *int) (*model.User, error)
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Users        UserServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the login initiation endpoint.
// GET /api/auth/login?return_url=<optional>&remember_me=<bool>.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	returnURL := safeRedirectPath(r.URL.Query().Get("return_url"), DefaultReturnPath)
	rememberMe, _ := strconv.ParseBool(r.URL.Query().Get("remember_me"))

	authURL, err := h.Svc.BeginLogin(r.Context(), service.BeginLoginInput{
		ReturnURL:  returnURL,
		RememberMe: rememberMe,
	})
	if err != nil {
		h.logger().ErrorContext(r.Context(), "failed to begin login", "err", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     err,
		})
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles the OAuth callback endpoint.
// GET /api/auth/callback?code=<code>&state=<state>.
//
// All outcomes end in a redirect: failures to the login page with the
// reason, success to the attempt's return URL with the session cookie set.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	result := h.Svc.HandleCallback(r.Context(), service.CallbackInput{
		State:                r.URL.Query().Get("state"),
		Code:                 r.URL.Query().Get("code"),
		AlreadyAuthenticated: claimsFromRequest(r, h.Svc) != nil,
	})

	if !result.Outcome.Authenticated {
		http.Redirect(w, r, loginErrorURL(result.Outcome.Reason), http.StatusFound)
		return
	}

	if result.Token != "" {
		h.setSessionCookie(w, r, result.Token, result.ExpiresAt)
	}

	http.Redirect(w, r, safeRedirectPath(result.RedirectPath, DefaultReturnPath), http.StatusFound)
}

// Logout clears the session cookie. Tokens are stateless, so there is no
// server-side session to invalidate; the token simply ages out.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, r, SessionCookieName)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Status returns the current authentication status.
// GET /api/auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromRequest(r, h.Svc)
	if claims == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":    claims.UserID,
			"email": claims.Email,
			"name":  claims.Name,
		},
		"expires_at": claims.ExpiresAt,
	})
}

// Me returns the authenticated user's profile from the database.
// GET /api/auth/me (behind RequireAuth).
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetByID(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// UpdatePreferredValueType stores the user's preferred metric.
// PUT /api/auth/preferred-value-type (behind RequireAuth).
func (h *AuthHandlers) UpdatePreferredValueType(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ValueTypeID *int `json:"value_type_id"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	user, err := h.Users.SetPreferredValueType(r.Context(), UserIDFromContext(r.Context()), body.ValueTypeID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// setSessionCookie writes the session cookie with a lifetime matching the
// token's expiry. Secure is derived from the request so local plain-HTTP
// development still gets a cookie.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		Expires:  expiresAt.UTC(),
	})
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// loginErrorURL builds the login redirect carrying a failure reason.
func loginErrorURL(reason domainauth.FailureReason) string {
	q := url.Values{}
	q.Set("error", string(reason))
	return LoginPath + "?" + q.Encode()
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns fallback when invalid.
// Backslashes are rejected outright; browsers normalize "/\host" into a
// protocol-relative URL.
func safeRedirectPath(candidate, fallback string) string {
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || strings.Contains(candidate, "\\") {
		return fallback
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return fallback
	}
	return candidate
}
