package models

import "time"

// Todo is a dated task. ForDate is always kept in UTC.
type Todo struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Title       string    `gorm:"not null"`
	ForDate     time.Time `gorm:"not null;index"`
	IsCompleted bool      `gorm:"not null;default:false"`
	UserID      string    `gorm:"not null;index"`
}

type TodoPatch struct {
	Title       *string
	ForDate     *time.Time
	IsCompleted *bool
	UserID      *string
}

func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.ForDate == nil && p.IsCompleted == nil && p.UserID == nil
}
