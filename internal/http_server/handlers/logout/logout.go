package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/zourdycodes/authworkflow/internal/http_server/cookie"
	resp "github.com/zourdycodes/authworkflow/internal/lib/api/response"
)

type Response struct {
	resp.Response
}

// New clears the refresh cookie at the renewal path scope. There is no
// server-side session to tear down, so logout always succeeds and repeating
// it is harmless. A refresh token issued earlier stays cryptographically
// valid until its natural expiry.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.logout.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		cookie.ClearRefreshToken(w)

		log.Info("logged out")

		ResponseOK(w, r)
	}
}

func ResponseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Response: resp.OK("Logged out"),
	})
}
