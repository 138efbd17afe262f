package models

import "time"

type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"index;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageRow is a Message joined with the author's name for the discussion board.
type MessageRow struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
