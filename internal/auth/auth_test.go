package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nithya-42/Stagelink/internal/domain"
)

func TestIssueAndParseToken(t *testing.T) {
	a := New(nil, "test-secret", time.Hour)

	user := &domain.User{
		ID:    42,
		Email: "dana@example.com",
		Role:  domain.RoleArtist,
		Staff: true,
	}

	token, err := a.IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleArtist, claims.Role)
	assert.True(t, claims.Staff)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := New(nil, "secret-a", time.Hour)
	parser := New(nil, "secret-b", time.Hour)

	token, err := issuer.IssueToken(&domain.User{ID: 1, Role: domain.RoleOrganizer})
	require.NoError(t, err)

	_, err = parser.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	a := New(nil, "test-secret", time.Hour)

	_, err := a.ParseToken("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	// bypass the constructor: it clamps a non-positive TTL
	a := &Auth{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := a.IssueToken(&domain.User{ID: 1, Role: domain.RoleOrganizer})
	require.NoError(t, err)

	_, err = a.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter3")))
}
