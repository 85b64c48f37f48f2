package mail

import (
	"context"
	"fmt"
	"log/slog"

	sl "github.com/zourdycodes/authworkflow/internal/lib/logger"
	"github.com/zourdycodes/authworkflow/internal/models"
)

type Publisher interface {
	SendMessage(ctx context.Context, msg models.Message) error
}

// SendActivationLink hands the activation mail off to the queue. Delivery is
// fire-and-forget: a publish failure is logged and the token stays valid for
// out-of-band delivery, so the caller's flow does not fail.
func SendActivationLink(ctx context.Context, log *slog.Logger, pub Publisher, clientURL, email, token string) {
	link := fmt.Sprintf("%s/activate?token=%s", clientURL, token)

	msg := models.Message{
		Email:   email,
		Link:    link,
		Subject: "Confirm your email",
	}

	if err := pub.SendMessage(ctx, msg); err != nil {
		log.Error("failed to publish activation message", sl.Err(err))
	}
}

// SendResetLink hands the password-reset mail off to the queue, with the same
// fire-and-forget contract as SendActivationLink.
func SendResetLink(ctx context.Context, log *slog.Logger, pub Publisher, clientURL, email, token string) {
	link := fmt.Sprintf("%s/reset_password?token=%s", clientURL, token)

	msg := models.Message{
		Email:   email,
		Link:    link,
		Subject: "Reset your password",
	}

	if err := pub.SendMessage(ctx, msg); err != nil {
		log.Error("failed to publish reset message", sl.Err(err))
	}
}
