package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/zourdycodes/authworkflow/internal/auth"
	"github.com/zourdycodes/authworkflow/internal/http_server/cookie"
	resp "github.com/zourdycodes/authworkflow/internal/lib/api/response"
	sl "github.com/zourdycodes/authworkflow/internal/lib/logger"
)

type Request struct {
	Email string `json:"email" validate:"required,email_strict"`
	Pass  string `json:"password" validate:"required"`
}

type Response struct {
	resp.Response
	AccessToken string `json:"access_token"`
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	authService *auth.Auth,
	refreshTTL time.Duration,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		log.Info("Request body decoded")

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		accessToken, refreshToken, err := authService.Login(ctx, req.Email, req.Pass)
		if err != nil {
			// Unknown email and wrong password produce the same response
			// so account existence never leaks.
			if errors.Is(err, auth.ErrInvalidCredentials) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("Invalid email or password"))

				return
			}

			log.Error("failed to login", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		cookie.SetRefreshToken(w, refreshToken, refreshTTL)

		log.Info("logged in successfully")

		ResponseOK(w, r, accessToken)
	}
}

func ResponseOK(w http.ResponseWriter, r *http.Request, accessToken string) {
	render.JSON(w, r, Response{
		Response:    resp.OK("Logged in successfully"),
		AccessToken: accessToken,
	})
}
