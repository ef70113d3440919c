package domain

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"index"`
	Active       bool      `gorm:"not null;default:true"`

	Tasks []Task `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// OwnerID returns the user's own id: a user record belongs to itself.
func (u *User) OwnerID() uint {
	return u.ID
}

// Models lists every entity managed by AutoMigrate.
func Models() []any {
	return []any{&User{}, &Task{}}
}
