package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/hayuasamad2-code/student-fee-system/models"
	"github.com/hayuasamad2-code/student-fee-system/store"
)

type StudentHandler struct {
	Users store.UserStore
}

func NewStudentHandler(users store.UserStore) *StudentHandler {
	return &StudentHandler{Users: users}
}

type studentPayload struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"` // ว่าง = ไม่เปลี่ยนรหัสผ่าน (เฉพาะตอนแก้ไข)
}

func (p *studentPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Username = strings.TrimSpace(p.Username)
}

// GET /students (admin)
func (h *StudentHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	students, err := h.Users.ListStudents(ctx)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, students)
}

// POST /students (admin)
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	p.normalize()
	if p.Name == "" || p.Username == "" || p.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing fields")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// ตรวจซ้ำ username
	if _, err := h.Users.UserByUsername(ctx, p.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return storeErr(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return storeErr(c, err)
	}
	u := models.User{
		Name:         p.Name,
		Username:     p.Username,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}
	if err := h.Users.CreateUser(ctx, &u); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Saved successfully", "id": u.ID})
}

// PUT /students/:id — admin หรือเจ้าของบัญชีเท่านั้น
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	uid, role := currentUser(c)
	if role != models.RoleAdmin && uid != id {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	p.normalize()
	if p.Name == "" || p.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing fields")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Student record not found")
	}
	if err != nil {
		return storeErr(c, err)
	}

	if p.Username != u.Username {
		if _, err := h.Users.UserByUsername(ctx, p.Username); err == nil {
			return echo.NewHTTPError(http.StatusConflict, "Username already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return storeErr(c, err)
		}
	}

	u.Name = p.Name
	u.Username = p.Username
	if p.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return storeErr(c, err)
		}
		u.PasswordHash = string(hash)
	}
	if err := h.Users.UpdateUser(ctx, u); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Updated successfully"})
}

// DELETE /students/:id (admin) — ลบ payments/messages ของนักเรียนไปด้วย
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Users.DeleteStudent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Student record not found")
	}
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Deleted successfully"})
}
