package auth

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

const userKey = "user"

type UserFinder interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Guard resolves the bearer token of a request to a stored user.
type Guard struct {
	Tokens *tokens.Service
	Users  UserFinder
}

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := bearerToken(c)
		if err != nil {
			return err
		}
		if err := g.authenticate(c, raw); err != nil {
			return err
		}
		return next(c)
	}
}

// OptionalAuth lets requests without an Authorization header through anonymously.
// A header that is present but wrong still fails.
func (g *Guard) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return next(c)
		}
		raw, err := bearerToken(c)
		if err != nil {
			return err
		}
		if err := g.authenticate(c, raw); err != nil {
			return err
		}
		return next(c)
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return fmt.Errorf("no identity on request: %w", service.ErrUnauthorized)
			}
			if !slices.Contains(roles, user.Role) {
				logging.FromContext(c.Request().Context()).Warn("access_denied",
					"status", 403, "user_id", user.ID, "role", user.Role, "required", roles)
				return fmt.Errorf("role %q may not access this resource: %w", user.Role, service.ErrForbidden)
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}

func (g *Guard) authenticate(c echo.Context, raw string) error {
	ctx := c.Request().Context()

	userID, err := g.Tokens.Verify(raw)
	if err != nil {
		logging.FromContext(ctx).Warn("token_rejected", "status", 401, "error", err)
		return err
	}

	user, err := g.Users.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user not found: id %s: %w", userID, service.ErrNotFound)
	}

	c.Set(userKey, user)
	c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", user.ID))))
	return nil
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", tokens.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("authorization header must be 'Bearer <token>': %w", tokens.ErrInvalidToken)
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", tokens.ErrMissingToken
	}
	return token, nil
}
