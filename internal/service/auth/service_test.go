package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kirinyoku/cinego/internal/domain"
	"github.com/kirinyoku/cinego/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	return New(memory.NewStore(), Config{
		Secret:         "test-secret",
		TokenTTL:       time.Hour,
		BcryptCost:     bcrypt.MinCost,
		InitialBalance: decimal.RequireFromString("20000.00"),
		Now:            func() time.Time { return now },
	})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Login: " ann ", Password: "secret1", FullName: "Ann Lee"})
	require.NoError(t, err)
	assert.Equal(t, "ann", u.Login)
	assert.Equal(t, domain.RoleCustomer, u.Role)
	assert.Equal(t, "20000", u.Balance.String())
	assert.NotEqual(t, "secret1", u.PasswordHash)

	sess, err := svc.Login(ctx, "ann", "secret1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), sess.ExpiresAt)
	assert.Equal(t, u.ID, sess.User.ID)

	id, err := svc.ParseToken(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: u.ID, Role: domain.RoleCustomer}, id)
	assert.False(t, id.IsAdmin())
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"empty login", RegisterInput{Password: "secret1", FullName: "A"}},
		{"short password", RegisterInput{Login: "a", Password: "123", FullName: "A"}},
		{"no name", RegisterInput{Login: "a", Password: "secret1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRegister_DuplicateLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Login: "ann", Password: "secret1", FullName: "Ann"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Login: "ann", Password: "secret2", FullName: "Other"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Login: "ann", Password: "secret1", FullName: "Ann"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ann", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_Rejects(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Login: "ann", Password: "secret1", FullName: "Ann"})
	require.NoError(t, err)
	sess, err := svc.Login(ctx, "ann", "secret1")
	require.NoError(t, err)

	other := New(memory.NewStore(), Config{Secret: "other", Now: func() time.Time { return now }})
	_, err = other.ParseToken(sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	later := New(memory.NewStore(), Config{Secret: "test-secret", Now: func() time.Time { return now.Add(2 * time.Hour) }})
	_, err = later.ParseToken(sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: domain.RoleAdmin})
	raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ParseToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
