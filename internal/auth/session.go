package auth

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const sessionUserKey = "user"

// SessionUser is the identity stored server-side after the OAuth handshake.
type SessionUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// SaveSessionUser stores the identity in the caller's session.
func SaveSessionUser(store *session.Store, c *fiber.Ctx, user SessionUser) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, string(payload))
	return sess.Save()
}

// SessionUserFromRequest returns the stored identity, if any.
func SessionUserFromRequest(store *session.Store, c *fiber.Ctx) (*SessionUser, bool) {
	if store == nil {
		return nil, false
	}
	sess, err := store.Get(c)
	if err != nil {
		return nil, false
	}
	raw, ok := sess.Get(sessionUserKey).(string)
	if !ok || raw == "" {
		return nil, false
	}
	var user SessionUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

// DestroySession removes the caller's session entirely.
func DestroySession(store *session.Store, c *fiber.Ctx) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
