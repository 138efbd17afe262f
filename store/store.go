package store

import (
	"context"
	"errors"
	"time"

	"github.com/hayuasamad2-code/student-fee-system/models"
)

// ErrNotFound is returned when a lookup matches no row. Handlers translate it
// to the right HTTP status; it must never be conflated with a store failure.
var ErrNotFound = errors.New("store: not found")

// UserStore reads and writes user accounts.
type UserStore interface {
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
	ListStudents(ctx context.Context) ([]models.User, error)
	// DeleteStudent removes a student account together with owned payments
	// and messages in one transaction.
	DeleteStudent(ctx context.Context, id uint) error
}

// FailedLoginStore is the audit log behind the security views. Inserts are
// append-only; the only delete is bulk, by age.
type FailedLoginStore interface {
	RecordFailedLogin(ctx context.Context, a *models.FailedLoginAttempt) error
	// FailedLogins returns every attempt, newest first.
	FailedLogins(ctx context.Context) ([]models.FailedLoginAttempt, error)
	// FailedLoginsSince returns attempts with attempt_time >= since, newest first.
	FailedLoginsSince(ctx context.Context, since time.Time) ([]models.FailedLoginAttempt, error)
	// DeleteFailedLoginsBefore removes attempts older than cutoff and reports
	// how many rows went away.
	DeleteFailedLoginsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type PaymentStore interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	ListPayments(ctx context.Context) ([]models.PaymentRow, error)
	PaymentExists(ctx context.Context, studentID uint, month string) (bool, error)
	DeletePayment(ctx context.Context, id uint) error
}

type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	ListMessages(ctx context.Context) ([]models.MessageRow, error)
	DeleteMessage(ctx context.Context, id uint) error
}

// Store is what the route table wires handlers to; the GORM adapter satisfies
// it, and tests swap in fakes per interface.
type Store interface {
	UserStore
	FailedLoginStore
	PaymentStore
	MessageStore
}
