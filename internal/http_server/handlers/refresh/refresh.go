package refresh

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/zourdycodes/authworkflow/internal/auth"
	"github.com/zourdycodes/authworkflow/internal/http_server/cookie"
	resp "github.com/zourdycodes/authworkflow/internal/lib/api/response"
	sl "github.com/zourdycodes/authworkflow/internal/lib/logger"
)

type Response struct {
	resp.Response
	AccessToken string `json:"access_token"`
}

func New(
	log *slog.Logger,
	authService *auth.Auth,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.refresh.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		c, err := r.Cookie(cookie.RefreshTokenName)
		if err != nil {
			log.Warn("missing refresh token cookie")

			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, resp.Error("Please login first"))

			return
		}

		accessToken, err := authService.Refresh(c.Value)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				log.Warn("invalid refresh token")

				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Please login first"))

				return
			}

			log.Error("failed to refresh access token", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		log.Info("access token renewed")

		ResponseOK(w, r, accessToken)
	}
}

func ResponseOK(w http.ResponseWriter, r *http.Request, accessToken string) {
	render.JSON(w, r, Response{
		Response:    resp.OK("Access token renewed"),
		AccessToken: accessToken,
	})
}
