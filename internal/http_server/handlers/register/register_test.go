package register

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
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

type nopPublisher struct{}

func (nopPublisher) SendMessage(context.Context, models.Message) error { return nil }

func newHandler(t *testing.T) (http.HandlerFunc, *memory.MemoryRepo) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()

	authService := auth.New(
		log,
		store,
		store,
		nopPublisher{},
		hasher.New(bcrypt.MinCost),
		tokens.NewActivation("s1", 5*time.Minute),
		tokens.NewAccess("s2", 15*time.Minute),
		tokens.NewRefresh("s3", time.Hour),
		"http://client.test",
	)

	return New(log, validate.New(), authService), store
}

func doRequest(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegister_OK(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)

	rec := doRequest(t, h, `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Registered)
	assert.Equal(t, "OK", body.Status)
	assert.NotEmpty(t, body.Message)
}

func TestRegister_BadJSON(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)

	rec := doRequest(t, h, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":"","email":"ann@x.com","password":"secret1"}`},
		{"empty email", `{"name":"Ann","email":"","password":"secret1"}`},
		{"empty password", `{"name":"Ann","email":"ann@x.com","password":""}`},
		{"bad email", `{"name":"Ann","email":"not-an-email","password":"secret1"}`},
		{"short password", `{"name":"Ann","email":"ann@x.com","password":"12345"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := doRequest(t, h, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"Error"`)
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	t.Parallel()

	h, store := newHandler(t)

	_, err := store.SaveAccount(context.Background(), "Ann", "ann@x.com", []byte("hash"))
	require.NoError(t, err)

	rec := doRequest(t, h, `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already been registered")
}
