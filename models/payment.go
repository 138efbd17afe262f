package models

import "time"

type Payment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"index;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Month     string    `json:"month" gorm:"size:50;not null"` // เช่น "2026-08"
	Status    string    `json:"status" gorm:"size:50;not null"`
	ProofURL  string    `json:"proof_url" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentRow is a Payment joined with the paying student's name for listing.
type PaymentRow struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"studentName"`
	Amount      float64   `json:"amount"`
	Month       string    `json:"month"`
	Status      string    `json:"status"`
	ProofURL    string    `json:"proof_url"`
	CreatedAt   time.Time `json:"created_at"`
}
