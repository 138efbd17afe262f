package handlers

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/hayuasamad2-code/student-fee-system/models"
	"github.com/hayuasamad2-code/student-fee-system/store"
)

// fakeStore is the in-memory stand-in for the GORM adapter.
type fakeStore struct {
	users    []models.User
	attempts []models.FailedLoginAttempt
	payments []models.Payment
	messages []models.Message

	recordErr  error     // forced failure for RecordFailedLogin
	lastCutoff time.Time // captured by DeleteFailedLoginsBefore
	nextID     uint
}

var _ store.Store = (*fakeStore)(nil)

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) UserByID(_ context.Context, id uint) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, u *models.User) error {
	u.ID = f.id()
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeStore) UpdateUser(_ context.Context, u *models.User) error {
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = *u
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) ListStudents(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == models.RoleStudent {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteStudent(_ context.Context, id uint) error {
	found := false
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID == id && u.Role == models.RoleStudent {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	f.users = kept
	if !found {
		return store.ErrNotFound
	}
	pays := f.payments[:0]
	for _, p := range f.payments {
		if p.StudentID != id {
			pays = append(pays, p)
		}
	}
	f.payments = pays
	msgs := f.messages[:0]
	for _, m := range f.messages {
		if m.StudentID != id {
			msgs = append(msgs, m)
		}
	}
	f.messages = msgs
	return nil
}

func (f *fakeStore) RecordFailedLogin(_ context.Context, a *models.FailedLoginAttempt) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	a.ID = f.id()
	f.attempts = append(f.attempts, *a)
	return nil
}

func (f *fakeStore) FailedLogins(_ context.Context) ([]models.FailedLoginAttempt, error) {
	out := append([]models.FailedLoginAttempt(nil), f.attempts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AttemptTime.After(out[j].AttemptTime) })
	return out, nil
}

func (f *fakeStore) FailedLoginsSince(_ context.Context, since time.Time) ([]models.FailedLoginAttempt, error) {
	var out []models.FailedLoginAttempt
	for _, a := range f.attempts {
		if !a.AttemptTime.Before(since) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AttemptTime.After(out[j].AttemptTime) })
	return out, nil
}

func (f *fakeStore) DeleteFailedLoginsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.lastCutoff = cutoff
	var deleted int64
	kept := f.attempts[:0]
	for _, a := range f.attempts {
		if a.AttemptTime.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	f.attempts = kept
	return deleted, nil
}

func (f *fakeStore) CreatePayment(_ context.Context, p *models.Payment) error {
	p.ID = f.id()
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakeStore) ListPayments(_ context.Context) ([]models.PaymentRow, error) {
	var out []models.PaymentRow
	for _, p := range f.payments {
		name := ""
		if u, err := f.UserByID(context.Background(), p.StudentID); err == nil {
			name = u.Name
		}
		out = append(out, models.PaymentRow{
			ID: p.ID, StudentID: p.StudentID, StudentName: name,
			Amount: p.Amount, Month: p.Month, Status: p.Status,
			ProofURL: p.ProofURL, CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

func (f *fakeStore) PaymentExists(_ context.Context, studentID uint, month string) (bool, error) {
	for _, p := range f.payments {
		if p.StudentID == studentID && p.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeletePayment(_ context.Context, id uint) error {
	for i, p := range f.payments {
		if p.ID == id {
			f.payments = append(f.payments[:i], f.payments[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) CreateMessage(_ context.Context, m *models.Message) error {
	m.ID = f.id()
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeStore) ListMessages(_ context.Context) ([]models.MessageRow, error) {
	var out []models.MessageRow
	for _, m := range f.messages {
		out = append(out, models.MessageRow{
			ID: m.ID, StudentID: m.StudentID, Message: m.Message, CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func (f *fakeStore) DeleteMessage(_ context.Context, id uint) error {
	for i, m := range f.messages {
		if m.ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// fakeProofStore records saves and hands back a fixed URL.
type fakeProofStore struct {
	saved    int
	lastName string
	url      string
}

func (f *fakeProofStore) Save(_ context.Context, filename, _ string, r io.Reader, _ int64) (string, error) {
	io.Copy(io.Discard, r)
	f.saved++
	f.lastName = filename
	return f.url, nil
}
