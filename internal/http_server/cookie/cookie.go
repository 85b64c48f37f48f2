package cookie

import (
	"net/http"
	"time"
)

const (
	RefreshTokenName = "refresh_token"

	// RefreshTokenPath scopes the cookie to the renewal endpoint, so the
	// refresh token is never replayed to any other route.
	RefreshTokenPath = "/refresh"
)

// SetRefreshToken hands the refresh token to the client over an HTTP-only
// cookie, out of reach of client-side code.
func SetRefreshToken(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenName,
		Value:    token,
		Path:     RefreshTokenPath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearRefreshToken expires the refresh cookie. Idempotent.
func ClearRefreshToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenName,
		Value:    "",
		Path:     RefreshTokenPath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
