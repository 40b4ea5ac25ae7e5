package services

import (
	"lofireads/internal/domain"
	"lofireads/internal/stores"
)

// AuthService binds the user directory to browser sessions. The session id
// is always explicit; nothing reads a global current-user pointer.
type AuthService struct {
	Users *stores.UserStore
}

func NewAuthService(users *stores.UserStore) *AuthService {
	return &AuthService{Users: users}
}

// Register creates the account and logs the new user into sid.
func (s *AuthService) Register(sid, email, password, name string) (domain.User, error) {
	u, err := s.Users.Register(email, password, name)
	if err != nil {
		return domain.User{}, err
	}
	s.Users.BindSession(sid, u.ID)
	return u, nil
}

// Login verifies credentials and binds sid to the user.
func (s *AuthService) Login(sid, email, password string) (domain.User, error) {
	u, err := s.Users.Authenticate(email, password)
	if err != nil {
		return domain.User{}, err
	}
	s.Users.BindSession(sid, u.ID)
	return u, nil
}

// Logout unbinds sid.
func (s *AuthService) Logout(sid string) {
	s.Users.UnbindSession(sid)
}

// CurrentUser resolves the user logged into sid; ErrNotFound for anonymous
// sessions.
func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
