package models

// Note belongs to a user through UserID. The reference is not enforced.
type Note struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	UserID      string `gorm:"not null;index"`
}

type NotePatch struct {
	Title       *string
	Description *string
	UserID      *string
}

func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.UserID == nil
}
