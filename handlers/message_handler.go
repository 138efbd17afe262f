package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hayuasamad2-code/student-fee-system/models"
	"github.com/hayuasamad2-code/student-fee-system/store"
)

type MessageHandler struct {
	Messages store.MessageStore
}

func NewMessageHandler(messages store.MessageStore) *MessageHandler {
	return &MessageHandler{Messages: messages}
}

// GET /messages — กระดานสนทนา เรียงเก่า -> ใหม่
func (h *MessageHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Messages.ListMessages(ctx)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

type messagePayload struct {
	Message string `json:"message"`
}

// POST /messages — โพสต์ในนามผู้ใช้ที่ล็อกอินเสมอ
func (h *MessageHandler) Create(c echo.Context) error {
	var p messagePayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	p.Message = strings.TrimSpace(p.Message)
	if p.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing fields")
	}

	uid, _ := currentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()

	m := models.Message{StudentID: uid, Message: p.Message}
	if err := h.Messages.CreateMessage(ctx, &m); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Saved successfully", "id": m.ID})
}

// DELETE /messages/:id (admin)
func (h *MessageHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Messages.DeleteMessage(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Message not found")
	}
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Message deleted successfully"})
}
