package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hayuasamad2-code/student-fee-system/config"
	"github.com/hayuasamad2-code/student-fee-system/handlers"
	"github.com/hayuasamad2-code/student-fee-system/middlewares"
	"github.com/hayuasamad2-code/student-fee-system/models"
	"github.com/hayuasamad2-code/student-fee-system/storage"
	"github.com/hayuasamad2-code/student-fee-system/store"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config, st store.Store, proofs storage.ProofStore) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(st, st, cfg.JWTSecret)
	std := handlers.NewStudentHandler(st)
	pay := handlers.NewPaymentHandler(st, proofs)
	msg := handlers.NewMessageHandler(st)
	sec := handlers.NewSecurityHandler(st)

	e.GET("/health", handlers.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// ===== Public =====
	e.POST("/login", auth.Login)

	// ===== Authenticated =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	adminMW := middlewares.RequireRole(models.RoleAdmin)

	e.GET("/auth/me", auth.Me, authMW)

	e.GET("/payments", pay.List, authMW)
	e.POST("/payments", pay.Create, authMW)
	e.DELETE("/payments/:id", pay.Delete, authMW, adminMW)

	e.GET("/messages", msg.List, authMW)
	e.POST("/messages", msg.Create, authMW)
	e.DELETE("/messages/:id", msg.Delete, authMW, adminMW)

	// ===== Students (admin จัดการบัญชี; แก้ไขโปรไฟล์ตัวเองได้) =====
	students := e.Group("/students", authMW)
	students.GET("", std.List, adminMW)
	students.POST("", std.Create, adminMW)
	students.PUT("/:id", std.Update) // admin หรือเจ้าของบัญชี ตรวจใน handler
	students.DELETE("/:id", std.Delete, adminMW)

	// ===== Security views (admin) =====
	security := e.Group("/security", authMW, adminMW)
	security.GET("/failed-logins", sec.FailedLogins)
	security.GET("/alerts", sec.Alerts)
	security.POST("/clear-logs", sec.ClearLogs)
}
