package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	c := NewCodec("test-secret")

	tok, err := c.Issue("user-1", "auth")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "auth", claims.Purpose)
}

func TestIssue_TokensAreDistinct(t *testing.T) {
	c := NewCodec("test-secret")

	t1, err := c.Issue("user-1", "auth")
	require.NoError(t, err)
	t2, err := c.Issue("user-1", "auth")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := NewCodec("secret-a").Issue("user-1", "auth")
	require.NoError(t, err)

	_, err = NewCodec("secret-b").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedToken(t *testing.T) {
	c := NewCodec("test-secret")
	tok, err := c.Issue("user-1", "auth")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + ".eyJ1aWQiOiJzb21lb25lLWVsc2UifQ." + parts[2]

	_, err = c.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	c := NewCodec("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := c.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
