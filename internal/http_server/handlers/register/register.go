package register

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
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email_strict"`
	Pass  string `json:"password" validate:"required,min=6"`
}

type Response struct {
	resp.Response
	Registered bool `json:"registered"`
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	authService *auth.Auth,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.register.New"

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

		err = authService.Register(ctx, req.Name, req.Email, req.Pass)
		if err != nil {
			if errors.Is(err, auth.ErrAccountExists) {
				log.Info("email already registered")

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("This email has already been registered"))

				return
			}

			log.Error("failed to register", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal error"))

			return
		}

		log.Info("registration accepted")

		ResponseOK(w, r)
	}
}

func ResponseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Response:   resp.OK("Successfully registered! Check your email to activate the account"),
		Registered: true,
	})
}
