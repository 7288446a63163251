package users

import "time"

type User struct {
	ID       uint `gorm:"primaryKey"`
	Name     string
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password *string `gorm:""`
	Role     string  `gorm:"type:varchar(32);not null;default:'curator'"`

	// GoogleSub links the account to a Google identity; nil for password-only accounts.
	GoogleSub *string `gorm:"uniqueIndex:idx_users_google_sub"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
