package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hayuasamad2-code/student-fee-system/models"
)

// GormStore is the Postgres adapter. All queries run under the caller's
// context so request timeouts bound every store call.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

/* ====================== Users ====================== */

func (s *GormStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *GormStore) UpdateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

func (s *GormStore) ListStudents(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleStudent).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) DeleteStudent(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND role = ?", id, models.RoleStudent).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Where("student_id = ?", id).Delete(&models.Message{}).Error
	})
}

/* ====================== Failed logins ====================== */

func (s *GormStore) RecordFailedLogin(ctx context.Context, a *models.FailedLoginAttempt) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *GormStore) FailedLogins(ctx context.Context) ([]models.FailedLoginAttempt, error) {
	var out []models.FailedLoginAttempt
	err := s.db.WithContext(ctx).Order("attempt_time DESC").Find(&out).Error
	return out, err
}

func (s *GormStore) FailedLoginsSince(ctx context.Context, since time.Time) ([]models.FailedLoginAttempt, error) {
	var out []models.FailedLoginAttempt
	err := s.db.WithContext(ctx).
		Where("attempt_time >= ?", since).
		Order("attempt_time DESC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) DeleteFailedLoginsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("attempt_time < ?", cutoff).
		Delete(&models.FailedLoginAttempt{})
	return res.RowsAffected, res.Error
}

/* ====================== Payments ====================== */

func (s *GormStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *GormStore) ListPayments(ctx context.Context) ([]models.PaymentRow, error) {
	var out []models.PaymentRow
	err := s.db.WithContext(ctx).
		Table("payments p").
		Select("p.id, p.student_id, u.name AS student_name, p.amount, p.month, p.status, p.proof_url, p.created_at").
		Joins("JOIN users u ON p.student_id = u.id").
		Order("p.created_at DESC").
		Scan(&out).Error
	return out, err
}

func (s *GormStore) PaymentExists(ctx context.Context, studentID uint, month string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("student_id = ? AND month = ?", studentID, month).
		Count(&n).Error
	return n > 0, err
}

func (s *GormStore) DeletePayment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/* ====================== Messages ====================== */

func (s *GormStore) CreateMessage(ctx context.Context, m *models.Message) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *GormStore) ListMessages(ctx context.Context) ([]models.MessageRow, error) {
	var out []models.MessageRow
	err := s.db.WithContext(ctx).
		Table("messages m").
		Select("m.id, m.student_id, u.name AS name, m.message, m.created_at").
		Joins("JOIN users u ON m.student_id = u.id").
		Order("m.created_at ASC").
		Scan(&out).Error
	return out, err
}

func (s *GormStore) DeleteMessage(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
