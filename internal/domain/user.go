package domain

import "time"

type UserRole string

const (
	RoleSuperadmin UserRole = "superadmin"
	RoleHotelAdmin UserRole = "hotel_admin"
)

func (r UserRole) Valid() bool {
	return r == RoleSuperadmin || r == RoleHotelAdmin
}

// User is a back-office staff account. Hotel admins are bound to one hotel.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Name         string     `json:"name" gorm:"size:150"`
	Role         UserRole   `json:"role" gorm:"size:20;not null"`
	HotelID      *int64     `json:"hotel_id,omitempty" gorm:"index"`
	IsActive     bool       `json:"is_active" gorm:"not null"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	FailedLoginAttempts int        `json:"-" gorm:"not null;default:0"`
	LockedUntil         *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Locked reports whether login is refused at now.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
