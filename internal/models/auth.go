package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Operator account roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is an operator account for the content console.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash string     `bun:"password_hash" json:"-"`
	TokenVersion int        `bun:"token_version,notnull,default:0" json:"token_version"`
	Roles        []string   `bun:"roles,array" json:"roles"`
	Provider     string     `bun:"provider,notnull,default:'local'" json:"provider"`
	Name         string     `bun:"name" json:"name"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	LastLoginAt  *time.Time `bun:"last_login_at" json:"last_login_at"`
}

// RefreshToken is a hashed, revocable refresh credential.
type RefreshToken struct {
	bun.BaseModel `bun:"table:refresh_tokens,alias:rt"`

	ID         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `bun:"user_id,type:uuid,notnull" json:"user_id"`
	JTI        string    `bun:"jti,notnull" json:"jti"`
	TokenHash  string    `bun:"token_hash,notnull" json:"-"`
	DeviceInfo *string   `bun:"device_info" json:"device_info"`
	Revoked    bool      `bun:"revoked,notnull,default:false" json:"revoked"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	ExpiresAt  time.Time `bun:"expires_at,notnull" json:"expires_at"`
}

// UserInfo is the public view of a logged-in operator.
type UserInfo struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Provider string   `json:"provider"`
	Roles    []string `json:"roles"`
}

func (u *User) Info(provider string) *UserInfo {
	return &UserInfo{
		ID:       u.ID.String(),
		Email:    u.Email,
		Name:     u.Name,
		Provider: provider,
		Roles:    u.Roles,
	}
}
