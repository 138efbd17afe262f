package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/hayuasamad2-code/student-fee-system/models"
	"github.com/hayuasamad2-code/student-fee-system/store"
)

// tokenTTL is fixed; there is no refresh and no revocation list, so expiry is
// the only thing that ends a session.
const tokenTTL = 24 * time.Hour

// loginFailedMsg is the same for "no such user" and "wrong password"; only
// the audit log keeps the distinction.
const loginFailedMsg = "Invalid username or password"

type AuthHandler struct {
	Users    store.UserStore
	Attempts store.FailedLoginStore
	Secret   string
}

func NewAuthHandler(users store.UserStore, attempts store.FailedLoginStore, secret string) *AuthHandler {
	return &AuthHandler{Users: users, Attempts: attempts, Secret: secret}
}

func (h *AuthHandler) signJWT(id uint, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.Secret))
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing fields")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.UserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		h.recordFailure(c, username, models.ReasonUserNotFound)
		return echo.NewHTTPError(http.StatusUnauthorized, loginFailedMsg)
	}
	if err != nil {
		// Store failure is a 500, never "user not found".
		return storeErr(c, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		h.recordFailure(c, username, models.ReasonWrongPassword)
		return echo.NewHTTPError(http.StatusUnauthorized, loginFailedMsg)
	}

	token, err := h.signJWT(u.ID, u.Role)
	if err != nil {
		c.Logger().Errorf("sign token: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "role": u.Role})
}

// recordFailure appends the audit row before the 401 goes out. Runs on a
// detached context so a client abort cannot cancel the write; its own failure
// is logged and never overrides the authentication response.
func (h *AuthHandler) recordFailure(c echo.Context, username string, reason models.FailedLoginReason) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), storeTimeout)
	defer cancel()
	attempt := &models.FailedLoginAttempt{
		Username:    username,
		IPAddress:   c.RealIP(),
		Reason:      reason,
		AttemptTime: time.Now(),
	}
	if err := h.Attempts.RecordFailedLogin(ctx, attempt); err != nil {
		c.Logger().Errorf("record failed login for %q: %v", username, err)
	}
}

// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	id, _ := currentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		// บัญชีถูกลบหลังออก token
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":       u.ID,
		"name":     u.Name,
		"username": u.Username,
		"role":     u.Role,
	})
}
