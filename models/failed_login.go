package models

import "time"

// FailedLoginReason distinguishes the two audit reasons. Only the log sees the
// distinction; clients get one generic message either way.
type FailedLoginReason string

const (
	ReasonUserNotFound  FailedLoginReason = "User not found"
	ReasonWrongPassword FailedLoginReason = "Wrong password"
)

// FailedLoginAttempt is append-only: one row per failed authentication, written
// before the failure response goes out.
type FailedLoginAttempt struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	Username    string            `json:"username" gorm:"size:60;not null"` // ตามที่ผู้ใช้พิมพ์มา อาจไม่มีอยู่จริง
	IPAddress   string            `json:"ip_address" gorm:"size:45;index;not null"`
	Reason      FailedLoginReason `json:"reason" gorm:"size:30;not null"`
	AttemptTime time.Time         `json:"attempt_time" gorm:"index;not null"`
}

// AnnotatedFailedLogin adds the per-IP count over the trailing recent window
// (window end = now, not the row's own time).
type AnnotatedFailedLogin struct {
	FailedLoginAttempt
	RecentAttempts int `json:"recent_attempts"`
}

// SecurityAlert is one IP that crossed the failed-attempt threshold inside the
// alert window.
type SecurityAlert struct {
	IPAddress      string    `json:"ip_address"`
	AttemptCount   int       `json:"attempt_count"`
	LastAttempt    time.Time `json:"last_attempt"`
	UsernamesTried string    `json:"usernames_tried"`
}
