package models

import "time"

// SessionTokenModel represents the database persistence model for
// session tokens. Rows are append-only; the auto-increment primary key
// doubles as the creation order.
type SessionTokenModel struct {
	ID              uint      `gorm:"primarykey"`
	SessionID       string    `gorm:"size:255;not null"`
	RefreshToken    string    `gorm:"size:255"`
	ObtainedViaCode bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (SessionTokenModel) TableName() string {
	return "session_tokens"
}
