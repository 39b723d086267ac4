package entity

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserPlan string

const (
	PlanFree    UserPlan = "free"
	PlanPremium UserPlan = "premium"
)

type User struct {
	ID               string    `db:"id"`
	Email            string    `db:"email"`
	Name             string    `db:"name"`
	Password         string    `db:"password"`
	Role             string    `db:"role"`
	Plan             string    `db:"plan"`
	PremiumExpiresAt time.Time `db:"premium_expires_at"`
	ProfilePhotoURL  string    `db:"profile_photo_url"`
	IsVerified       bool      `db:"is_verified"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// IsPremium reports whether the user's premium plan is active right now.
// An expired premium plan falls back to free-tier limits.
func (u *User) IsPremium(now time.Time) bool {
	if u.Plan != string(PlanPremium) {
		return false
	}
	return u.PremiumExpiresAt.After(now)
}

type UserLoginData struct {
	ID       string
	Username string
	Email    string
	Role     string
	Plan     string
}

func (u UserLoginData) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}
