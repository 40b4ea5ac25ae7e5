package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

type Preferences struct {
	Newsletter         bool     `json:"newsletter"`
	EmailNotifications bool     `json:"emailNotifications"`
	FavoriteGenres     []string `json:"favoriteGenres"`
}

// Profile extends the directory record with contact and preference data.
type Profile struct {
	User
	Phone       string      `json:"phone,omitempty"`
	Addresses   []Address   `json:"addresses"`
	Preferences Preferences `json:"preferences"`
}
