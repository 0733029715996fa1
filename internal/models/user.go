package models

import "time"

// Role — закрытый набор ролей. Любое другое значение в токене отвергается.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleSEO    Role = "SEO"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleSEO:
		return true
	}
	return false
}

type User struct {
	ID              string      `json:"id"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	PasswordHash    string      `json:"-"`
	Role            Role        `json:"role"`
	Image           *string     `json:"image,omitempty"`
	EmailVerifiedAt *time.Time  `json:"emailVerified,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	Counts          *UserCounts `json:"_count,omitempty"`
}

type UserCounts struct {
	Articles int `json:"articles"`
	Projects int `json:"projects"`
}

// UserInput — тело POST/PUT /users. Password обязателен при создании и
// необязателен при обновлении.
type UserInput struct {
	Email    string  `json:"email"    validate:"required,email,max=255"`
	Name     string  `json:"name"     validate:"required,min=2,max=100"`
	Password string  `json:"password" validate:"omitempty,password"`
	Role     Role    `json:"role"     validate:"omitempty,oneof=ADMIN EDITOR SEO"`
	Image    *string `json:"image"    validate:"omitempty,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}
