package middleware

import (
	"context"
	"errors"
	"strings"

	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/domain/user"
	"recruitment-portal/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const CtxCallerKey = "caller"

var (
	errMissingToken = errors.New("missing bearer token")
	errUnknownUser  = errors.New("token subject no longer exists")
)

type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

// AuthMiddleware verifies access tokens and reloads the user so the role
// always reflects the stored row.
type AuthMiddleware struct {
	jwt   jwt.Service
	users UserLoader
}

func NewAuthMiddleware(jwtSvc jwt.Service, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, users: users}
}

func (m *AuthMiddleware) Authenticate(ctx context.Context, token string) (identity.Caller, error) {
	if token == "" {
		return identity.Anonymous{}, errMissingToken
	}
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return identity.Anonymous{}, err
	}
	if !m.jwt.IsAccessToken(claims) {
		return identity.Anonymous{}, jwt.ErrTokenInvalid
	}

	u, err := m.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return identity.Anonymous{}, errUnknownUser
		}
		return identity.Anonymous{}, err
	}
	return u.Caller(), nil
}

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		caller, err := m.Authenticate(c.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			case errors.Is(err, jwt.ErrTokenInvalid), errors.Is(err, errUnknownUser):
				return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
			default:
				return NewAppError(fiber.StatusInternalServerError, "", nil, err)
			}
		}
		if !identity.IsAuthenticated(caller) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		c.Locals(CtxCallerKey, caller)
		return c.Next()
	}
}

// RequireRole admits only callers registered with role.
func RequireRole(role identity.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		got, ok := identity.RoleOf(CallerFrom(c))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if got != role {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
		return c.Next()
	}
}

func CallerFrom(c fiber.Ctx) identity.Caller {
	if caller, ok := c.Locals(CtxCallerKey).(identity.Caller); ok && caller != nil {
		return caller
	}
	return identity.Anonymous{}
}

func PosterFrom(c fiber.Ctx) (identity.Poster, error) {
	caller := CallerFrom(c)
	if !identity.IsAuthenticated(caller) {
		return identity.Poster{}, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	p, ok := identity.AsPoster(caller)
	if !ok {
		return identity.Poster{}, NewAppError(fiber.StatusForbidden, "Only job posters can do this", nil, nil)
	}
	return p, nil
}

func ApplicantFrom(c fiber.Ctx) (identity.Applicant, error) {
	caller := CallerFrom(c)
	if !identity.IsAuthenticated(caller) {
		return identity.Applicant{}, NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	a, ok := identity.AsApplicant(caller)
	if !ok {
		return identity.Applicant{}, NewAppError(fiber.StatusForbidden, "Only applicants can do this", nil, nil)
	}
	return a, nil
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(authHeader string) (string, bool) {
	return bearerTokenFromHeader(authHeader)
}
