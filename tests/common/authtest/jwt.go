//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"smartpark/internal/domain/user"
	"smartpark/internal/pkg/config"
	pkgjwt "smartpark/internal/pkg/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens the way the identity service would. The server
// itself only validates tokens, so tests mint their own here.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	return h.signToken(t, userID, role, time.Now().Add(15*time.Minute))
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	return h.signToken(t, userID, role, time.Now().Add(-1*time.Minute))
}

func (h *JWTHelper) signToken(t *testing.T, userID uuid.UUID, role user.Role, expiresAt time.Time) string {
	t.Helper()

	claims := pkgjwt.Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err)
	return signed
}
