package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zourdycodes/authworkflow/internal/models"
)

func TestSubjectRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewAccess("access-secret", time.Minute)

	tok, err := c.IssueSubject(42)
	require.NoError(t, err)

	id, err := c.ParseSubject(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestRegistrationRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewActivation("activation-secret", time.Minute)

	reg := models.PendingRegistration{
		Name:     "Ann",
		Email:    "ann@x.com",
		PassHash: []byte{0x01, 0x02, 0xff},
	}

	tok, err := c.IssueRegistration(reg)
	require.NoError(t, err)

	got, err := c.ParseRegistration(tok)
	require.NoError(t, err)
	assert.Equal(t, reg, got)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	c := NewRefresh("refresh-secret", -time.Second)

	tok, err := c.IssueSubject(7)
	require.NoError(t, err)

	_, err = c.ParseSubject(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewAccess("right-secret", time.Minute)
	verifier := NewAccess("wrong-secret", time.Minute)

	tok, err := issuer.IssueSubject(7)
	require.NoError(t, err)

	_, err = verifier.ParseSubject(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_CrossClassSameSecret(t *testing.T) {
	t.Parallel()

	// Same key, different purpose: still rejected.
	access := NewAccess("shared-secret", time.Minute)
	refresh := NewRefresh("shared-secret", time.Minute)

	tok, err := access.IssueSubject(7)
	require.NoError(t, err)

	_, err = refresh.ParseSubject(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	c := NewAccess("secret", time.Minute)

	for _, tok := range []string{"", "not.a.jwt", "a.b"} {
		_, err := c.ParseSubject(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}

func TestParse_Tampered(t *testing.T) {
	t.Parallel()

	c := NewAccess("secret", time.Minute)

	tok, err := c.IssueSubject(7)
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"

	_, err = c.ParseSubject(tampered)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRegistration_SubjectToken(t *testing.T) {
	t.Parallel()

	c := NewActivation("secret", time.Minute)

	tok, err := c.IssueSubject(7)
	require.NoError(t, err)

	_, err = c.ParseRegistration(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
