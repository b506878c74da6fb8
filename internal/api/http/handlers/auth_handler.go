package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/event-kit/ticketing-service/internal/api/dto"
	"github.com/event-kit/ticketing-service/internal/auth"
	"github.com/event-kit/ticketing-service/internal/service"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

const oauthStateKey = "oauth_state"

// AuthHandler drives the GitHub OAuth browser flow and session lifecycle.
type AuthHandler struct {
	service  *service.AuthService
	sessions *session.Store
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{service: authService, sessions: sessions}
}

// Login GET /login: redirect the browser to the GitHub authorize page.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return apperrors.MapError(err)
	}
	state := uuid.NewString()
	sess.Set(oauthStateKey, state)
	if err := sess.Save(); err != nil {
		return apperrors.MapError(err)
	}
	return c.Redirect(h.service.LoginURL(state), fiber.StatusTemporaryRedirect)
}

// Callback GET /auth/github/callback: exchange the code, establish the
// session, and hand back a bearer token for API clients.
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return apperrors.NewUnauthorized("Authentication failed.")
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return apperrors.MapError(err)
	}
	storedState, _ := sess.Get(oauthStateKey).(string)
	if storedState == "" || storedState != c.Query("state") {
		return apperrors.NewUnauthorized("Authentication failed.")
	}
	sess.Delete(oauthStateKey)
	if err := sess.Save(); err != nil {
		return apperrors.MapError(err)
	}

	user, token, _, err := h.service.HandleCallback(c.UserContext(), code)
	if err != nil {
		return err
	}

	if err := auth.SaveSessionUser(h.sessions, c, *user); err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    *user,
	})
}

// Logout GET /logout: destroy the session and return to the root.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := auth.DestroySession(h.sessions, c); err != nil {
		return apperrors.MapError(err)
	}
	return c.Redirect("/")
}

// Status GET /auth: report the session login state.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	if user, ok := auth.SessionUserFromRequest(h.sessions, c); ok {
		return c.SendString("Logged in as " + user.Username)
	}
	return c.SendString("Logged Out")
}
