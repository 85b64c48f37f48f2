package activate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/zourdycodes/authworkflow/internal/auth"
	resp "github.com/zourdycodes/authworkflow/internal/lib/api/response"
	sl "github.com/zourdycodes/authworkflow/internal/lib/logger"
	"github.com/zourdycodes/authworkflow/internal/lib/tokens"
)

type Response struct {
	resp.Response
	Activated bool `json:"activated"`
}

func New(
	log *slog.Logger,
	authService *auth.Auth,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.activate.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		token := r.URL.Query().Get("token")
		if token == "" {
			log.Warn("missing activation token")

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Missing token"))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := authService.Activate(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, tokens.ErrTokenExpired):
				log.Warn("activation token expired")

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("Activation link has expired, please register again"))
			case errors.Is(err, tokens.ErrTokenInvalid):
				log.Warn("invalid activation token", sl.Err(err))

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("Invalid activation link"))
			case errors.Is(err, auth.ErrAccountExists):
				log.Info("email already activated")

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("This email has already been registered"))
			default:
				log.Error("failed to activate account", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Internal error"))
			}

			return
		}

		log.Info("account activated", slog.Int64("id", id))

		ResponseOK(w, r)
	}
}

func ResponseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Response:  resp.OK("Account activated! You can now log in"),
		Activated: true,
	})
}
