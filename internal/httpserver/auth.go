package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type authResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
	User      *models.User `json:"user"`
}

func withToken(res *transport.AuthResult, msg string) authResponse {
	return authResponse{Success: true, Message: msg, Token: res.Token, ExpiresAt: &res.ExpiresAt, User: res.User}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register_failed", "invalid body", err)
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register_failed", err)
	}

	l.Info("register_success", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, withToken(res, "registered"))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_failed", "invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req.Identifier(), req.Password)
	if err != nil {
		return fail(l, "login_failed", err)
	}

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, withToken(res, ""))
}

// Verify runs behind RequireAuth, so reaching it means the token is good.
func (h *AuthHTTP) Verify(c echo.Context) error {
	return c.JSON(http.StatusOK, authResponse{Success: true, User: authmw.CurrentUser(c)})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.profile")

	user, err := h.Svc.Profile(ctx, authmw.CurrentUser(c).ID)
	if err != nil {
		return fail(l, "profile_failed", err)
	}
	return ok(c, http.StatusOK, "", user)
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_profile_failed", "invalid body", err)
	}

	user, err := h.Svc.UpdateProfile(ctx, authmw.CurrentUser(c).ID, req)
	if err != nil {
		return fail(l, "update_profile_failed", err)
	}

	l.Info("update_profile_success")
	return ok(c, http.StatusOK, "profile updated", user)
}
