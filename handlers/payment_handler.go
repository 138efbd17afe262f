package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hayuasamad2-code/student-fee-system/models"
	"github.com/hayuasamad2-code/student-fee-system/storage"
	"github.com/hayuasamad2-code/student-fee-system/store"
)

type PaymentHandler struct {
	Payments store.PaymentStore
	Proofs   storage.ProofStore
}

func NewPaymentHandler(payments store.PaymentStore, proofs storage.ProofStore) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Proofs: proofs}
}

// GET /payments
func (h *PaymentHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Payments.ListPayments(ctx)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /payments (multipart: amount, month, proof?; admin ระบุ student_id/status ได้)
func (h *PaymentHandler) Create(c echo.Context) error {
	uid, role := currentUser(c)

	amountStr := c.FormValue("amount")
	month := c.FormValue("month")
	if amountStr == "" || month == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing fields")
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid amount")
	}

	// นักเรียนจ่ายให้ตัวเองเสมอ, admin บันทึกแทนใครก็ได้
	studentID := uid
	status := "paid"
	if role == models.RoleAdmin {
		if v := c.FormValue("student_id"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid student_id")
			}
			studentID = uint(n)
		}
		if v := c.FormValue("status"); v != "" {
			status = v
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	exists, err := h.Payments.PaymentExists(ctx, studentID, month)
	if err != nil {
		return storeErr(c, err)
	}
	if exists {
		return echo.NewHTTPError(http.StatusBadRequest, "You already paid for this month!")
	}

	proofURL := ""
	if fh, err := c.FormFile("proof"); err == nil {
		src, err := fh.Open()
		if err != nil {
			c.Logger().Errorf("open proof upload: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		defer src.Close()
		proofURL, err = h.Proofs.Save(ctx, fh.Filename, fh.Header.Get("Content-Type"), src, fh.Size)
		if err != nil {
			c.Logger().Errorf("store proof upload: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
	}

	p := models.Payment{
		StudentID: studentID,
		Amount:    amount,
		Month:     month,
		Status:    status,
		ProofURL:  proofURL,
	}
	if err := h.Payments.CreatePayment(ctx, &p); err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Saved successfully", "id": p.ID})
}

// DELETE /payments/:id (admin)
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Payments.DeletePayment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Payment not found")
	}
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Payment deleted successfully"})
}
