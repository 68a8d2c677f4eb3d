package identity

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProvider_Accounts(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryProvider("http://localhost:3000/auth/action")

	user, err := p.CreateUser(ctx, "test@example.com", "password123", "Test User")
	require.NoError(t, err)

	_, err = p.CreateUser(ctx, "test@example.com", "other", "Dup")
	assert.ErrorIs(t, err, ErrEmailExists)

	uid, err := p.SignInWithEmailAndPassword(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.UID, uid)

	_, err = p.SignInWithEmailAndPassword(ctx, "test@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.GetUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryProvider_ResetCodeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryProvider("http://localhost:3000/auth/action")
	_, err := p.CreateUser(ctx, "test@example.com", "password123", "Test User")
	require.NoError(t, err)

	link, err := p.PasswordResetLink(ctx, "test@example.com")
	require.NoError(t, err)
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	code := parsed.Query().Get("oobCode")
	assert.Equal(t, "resetPassword", parsed.Query().Get("mode"))

	email, err := p.VerifyPasswordResetCode(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", email)

	_, err = p.VerifyPasswordResetCode(ctx, code)
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestMemoryProvider_DeleteUserFreesEmail(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryProvider("http://localhost:3000/auth/action")

	user, err := p.CreateUser(ctx, "test@example.com", "password123", "Test User")
	require.NoError(t, err)
	require.NoError(t, p.DeleteUser(ctx, user.UID))

	_, err = p.SignInWithEmailAndPassword(ctx, "test@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.CreateUser(ctx, "test@example.com", "password123", "Test User")
	assert.NoError(t, err)

	assert.ErrorIs(t, p.DeleteUser(ctx, "ghost"), ErrUserNotFound)
}
