package httpx

// Cookie and path constants shared across handlers and middleware.
const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "auth_session"

	// LoginPath is where failed logins land, with the reason in the
	// error query parameter.
	LoginPath = "/login"

	// DashboardPath is where an already authenticated browser lands when
	// it replays a callback.
	DashboardPath = "/dashboard"

	// DefaultReturnPath is the post-login destination when no valid
	// return_url was supplied.
	DefaultReturnPath = "/"
)

// Default paging for record listings.
const (
	DefaultRecordsLimit = 100
	MaxRecordsLimit     = 500
)
