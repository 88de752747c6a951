package models

// User is the owner of notes and todos. Password is stored as given.
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"not null;index"`
	Password  string `gorm:"not null"`
}

// UserPatch carries the optional fields of an update. Nil fields are left untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Password == nil
}
