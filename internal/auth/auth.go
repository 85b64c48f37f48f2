package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zourdycodes/authworkflow/internal/lib/hasher"
	sl "github.com/zourdycodes/authworkflow/internal/lib/logger"
	"github.com/zourdycodes/authworkflow/internal/lib/mail"
	"github.com/zourdycodes/authworkflow/internal/lib/tokens"
	"github.com/zourdycodes/authworkflow/internal/models"
	"github.com/zourdycodes/authworkflow/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
)

type Auth struct {
	log             *slog.Logger
	accSaver        AccountSaver
	accProvider     AccountProvider
	publisher       mail.Publisher
	passHasher      *hasher.Hasher
	activationCodec *tokens.Codec
	accessCodec     *tokens.Codec
	refreshCodec    *tokens.Codec
	clientURL       string
}

type AccountSaver interface {
	// SaveAccount commits a new account and returns its id. The store must
	// enforce email uniqueness and return storage.ErrAccountExists on a
	// violation.
	SaveAccount(ctx context.Context, name, email string, passHash []byte) (int64, error)
}

type AccountProvider interface {
	AccountByEmail(ctx context.Context, email string) (models.Account, error)
}

func New(
	log *slog.Logger,
	accountSaver AccountSaver,
	accountProvider AccountProvider,
	publisher mail.Publisher,
	passHasher *hasher.Hasher,
	activationCodec, accessCodec, refreshCodec *tokens.Codec,
	clientURL string,
) *Auth {
	return &Auth{
		log:             log,
		accSaver:        accountSaver,
		accProvider:     accountProvider,
		publisher:       publisher,
		passHasher:      passHasher,
		activationCodec: activationCodec,
		accessCodec:     accessCodec,
		refreshCodec:    refreshCodec,
		clientURL:       clientURL,
	}
}

// Register hashes the secret, mints an activation token carrying the pending
// registration and hands the activation mail to the queue. Nothing is
// committed to the store until the token is activated.
func (a *Auth) Register(ctx context.Context, name, email, pass string) error {
	const op = "auth.Register"

	log := a.log.With(slog.String("op", op))

	_, err := a.accProvider.AccountByEmail(ctx, email)
	if err == nil {
		log.Warn("account already exists")

		return fmt.Errorf("%s: %w", op, ErrAccountExists)
	}
	if !errors.Is(err, storage.ErrAccountNotFound) {
		log.Error("failed to check account", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	passHash, err := a.passHasher.Hash(pass)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := a.activationCodec.IssueRegistration(models.PendingRegistration{
		Name:     name,
		Email:    email,
		PassHash: passHash,
	})
	if err != nil {
		log.Error("failed to mint activation token", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	mail.SendActivationLink(ctx, log, a.publisher, a.clientURL, email, token)

	log.Info("registration pending activation")

	return nil
}

// Activate verifies an activation token and commits the account it carries.
// The uniqueness re-check narrows the window where two registrations for the
// same email were pending concurrently; the store's unique constraint closes
// it at commit.
func (a *Auth) Activate(ctx context.Context, token string) (int64, error) {
	const op = "auth.Activate"

	log := a.log.With(slog.String("op", op))

	reg, err := a.activationCodec.ParseRegistration(token)
	if err != nil {
		log.Warn("invalid activation token", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	_, err = a.accProvider.AccountByEmail(ctx, reg.Email)
	if err == nil {
		log.Warn("account already activated")

		return 0, fmt.Errorf("%s: %w", op, ErrAccountExists)
	}
	if !errors.Is(err, storage.ErrAccountNotFound) {
		log.Error("failed to check account", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.accSaver.SaveAccount(ctx, reg.Name, reg.Email, reg.PassHash)
	if err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			log.Warn("lost activation race")

			return 0, fmt.Errorf("%s: %w", op, ErrAccountExists)
		}

		log.Error("failed to save account", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("account activated", slog.Int64("id", id))

	return id, nil
}

// Login verifies credentials and mints an access and refresh token pair. An
// unknown email and a wrong password surface the same error so the response
// does not leak account existence.
func (a *Auth) Login(ctx context.Context, email, pass string) (accessToken, refreshToken string, err error) {
	const op = "auth.Login"

	log := a.log.With(slog.String("op", op))

	acc, err := a.accProvider.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			log.Warn("account not found")

			return "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		log.Error("failed to get account", sl.Err(err))

		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	if !a.passHasher.Verify(pass, acc.PassHash) {
		log.Info("invalid credentials")

		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	accessToken, err = a.accessCodec.IssueSubject(acc.ID)
	if err != nil {
		log.Error("failed to mint access token", sl.Err(err))

		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err = a.refreshCodec.IssueSubject(acc.ID)
	if err != nil {
		log.Error("failed to mint refresh token", sl.Err(err))

		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("logged in", slog.Int64("id", acc.ID))

	return accessToken, refreshToken, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself is not rotated; it stays valid until natural expiry.
func (a *Auth) Refresh(refreshToken string) (string, error) {
	const op = "auth.Refresh"

	log := a.log.With(slog.String("op", op))

	id, err := a.refreshCodec.ParseSubject(refreshToken)
	if err != nil {
		log.Warn("invalid refresh token", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	accessToken, err := a.accessCodec.IssueSubject(id)
	if err != nil {
		log.Error("failed to mint access token", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("access token renewed", slog.Int64("id", id))

	return accessToken, nil
}

// ForgotPassword mints a time-boxed reset capability for an existing account
// and hands the reset mail to the queue. The queue outcome does not affect
// the result.
func (a *Auth) ForgotPassword(ctx context.Context, email string) error {
	const op = "auth.ForgotPassword"

	log := a.log.With(slog.String("op", op))

	acc, err := a.accProvider.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			log.Warn("account not found")

			return fmt.Errorf("%s: %w", op, ErrAccountNotFound)
		}

		log.Error("failed to get account", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := a.accessCodec.IssueSubject(acc.ID)
	if err != nil {
		log.Error("failed to mint reset token", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	mail.SendResetLink(ctx, log, a.publisher, a.clientURL, email, token)

	log.Info("reset message dispatched", slog.Int64("id", acc.ID))

	return nil
}
