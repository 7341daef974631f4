package entity

import (
	"time"
)

// DefaultAvatarURL is assigned to users that never uploaded an avatar.
const DefaultAvatarURL = "https://static.vecteezy.com/system/resources/previews/005/544/718/original/profile-icon-design-free-vector.jpg"

// User is the aggregate root for the user domain (the authenticated principal).
// PasswordHash holds a bcrypt hash and is never serialized.
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	PasswordHash string `json:"-"`
	AvatarURL    string
	Favorites    []string // listing ids
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the representation returned to clients and attached to
// authenticated requests. It has no credential field.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatar"`
	Favorites []string  `json:"favorites"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public strips the credential hash.
func (u *User) Public() PublicUser {
	favs := make([]string, len(u.Favorites))
	copy(favs, u.Favorites)
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		Favorites: favs,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
