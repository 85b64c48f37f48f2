package forgotPassword

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zourdycodes/authworkflow/internal/auth"
	"github.com/zourdycodes/authworkflow/internal/lib/hasher"
	"github.com/zourdycodes/authworkflow/internal/lib/tokens"
	"github.com/zourdycodes/authworkflow/internal/lib/validate"
	"github.com/zourdycodes/authworkflow/internal/models"
	"github.com/zourdycodes/authworkflow/internal/storage/memory"
)

type capturePublisher struct {
	mu   sync.Mutex
	msgs []models.Message
}

func (p *capturePublisher) SendMessage(_ context.Context, msg models.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.msgs = append(p.msgs, msg)
	return nil
}

func newHandler(t *testing.T) (http.HandlerFunc, *capturePublisher) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	pub := &capturePublisher{}

	_, err := store.SaveAccount(context.Background(), "Ann", "ann@x.com", []byte("hash"))
	require.NoError(t, err)

	authService := auth.New(
		log,
		store,
		store,
		pub,
		hasher.New(bcrypt.MinCost),
		tokens.NewActivation("s1", 5*time.Minute),
		tokens.NewAccess("s2", 15*time.Minute),
		tokens.NewRefresh("s3", time.Hour),
		"http://client.test",
	)

	return New(log, validate.New(), authService), pub
}

func doRequest(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/forgot_password", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestForgotPassword_OK(t *testing.T) {
	t.Parallel()

	h, pub := newHandler(t)

	rec := doRequest(t, h, `{"email":"ann@x.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "Reset your password", pub.msgs[0].Subject)
	assert.Contains(t, pub.msgs[0].Link, "/reset_password?token=")
}

func TestForgotPassword_NotFound(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)

	rec := doRequest(t, h, `{"email":"nobody@x.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForgotPassword_Validation(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)

	assert.Equal(t, http.StatusBadRequest, doRequest(t, h, `{"email":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, h, `{"email":"bad"}`).Code)
}
