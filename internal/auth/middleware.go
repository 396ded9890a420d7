package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/repository"
	apperrors "github.com/spec-kit/reservation-service/pkg/util"
)

const (
	principalKey = "auth_principal"
	claimsKey    = "auth_claims"
)

// AuthMiddleware validates bearer tokens and loads the current principal.
// Any failure along the way (bad token, revoked token, vanished subject)
// leaves the request unauthenticated; there is no partial login state.
type AuthMiddleware struct {
	tokens  *TokenManager
	users   repository.UserRepository
	revoker *TokenRevoker
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, revoker *TokenRevoker) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, revoker: revoker}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	revoked, err := m.revoker.IsRevoked(c.Context(), claims.ID)
	if err != nil {
		return apperrors.NewUnauthorized("unable to verify credential")
	}
	if revoked {
		return apperrors.NewUnauthorized("token revoked")
	}

	userID, err := claims.UserID()
	if err != nil {
		return apperrors.NewUnauthorized("invalid token subject")
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, user)
	c.Locals(claimsKey, claims)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

// ClaimsFromContext retrieves the parsed token claims for the request.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

// RequireAdmin gates administrator-only routes through the capability policy.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !Can(principal, ActionUserAdmin, 0) {
			return apperrors.NewForbidden("administrator role required")
		}
		return c.Next()
	}
}
