package domain

import "time"

// Task is owned by exactly one User through UserID.
type Task struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:255;not null"`
	Completed   bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index"`
	UserID      uint      `gorm:"not null;index"`
}

// OwnerID returns the id of the user allowed to mutate the task.
func (t *Task) OwnerID() uint {
	return t.UserID
}
