package forgotPassword

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
	resp "github.com/zourdycodes/authworkflow/internal/lib/api/response"
	sl "github.com/zourdycodes/authworkflow/internal/lib/logger"
)

type Request struct {
	Email string `json:"email" validate:"required,email_strict"`
}

type Response struct {
	resp.Response
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	authService *auth.Auth,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forgotPassword.New"

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

		err = authService.ForgotPassword(ctx, req.Email)
		if err != nil {
			if errors.Is(err, auth.ErrAccountNotFound) {
				log.Info("account not found")

				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("No account with this email"))

				return
			}

			log.Error("failed to dispatch reset message", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		log.Info("reset message dispatched")

		ResponseOK(w, r)
	}
}

func ResponseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Response: resp.OK("Password reset link sent, check your email"),
	})
}
