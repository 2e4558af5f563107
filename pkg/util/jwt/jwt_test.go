package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	Init("test-secret", 15, 168)

	tok, err := GenerateAccessToken("U1")
	require.NoError(t, err)

	claims, err := ParseTokenWithSubject(tok, SubjectAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "U1", claims.UserID)
	assert.Empty(t, claims.TokenID)

	_, err = ParseTokenWithSubject(tok, SubjectRefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestRefreshTokenCarriesTokenID(t *testing.T) {
	Init("test-secret", 15, 168)

	tok, id, err := GenerateRefreshToken("U2")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	claims, err := ParseTokenWithSubject(tok, SubjectRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, id, claims.TokenID)
}

func TestParseTokenRejectsOtherSecret(t *testing.T) {
	Init("secret-a", 15, 168)
	tok, err := GenerateAccessToken("U1")
	require.NoError(t, err)

	Init("secret-b", 15, 168)
	_, err = ParseToken(tok)
	assert.Error(t, err)
}
