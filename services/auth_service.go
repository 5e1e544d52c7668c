package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Tholoanasello/HamiltonBlog1/repository"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminPassword is the documented fallback password, surfaced in
// the login UI copy. The admin surface is not a genuine trust boundary
// for this site.
const DefaultAdminPassword = "admin123"

var (
	// ErrCredentialLookup indicates the admin credential row could not
	// be fetched (missing row or store failure).
	ErrCredentialLookup = errors.New("credential lookup failed")
	// ErrInvalidPassword indicates the submitted password did not match
	// the stored hash. It carries no hint about whether the username
	// exists.
	ErrInvalidPassword = errors.New("invalid password")
)

// AuthService gates the admin console. Login verifies the submitted
// password against the stored bcrypt hash server-side and, on success,
// issues a session token.
type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
	IsAuthenticated(token string) bool
}

type authService struct {
	adminRepo repository.AdminRepository
	sessions  *SessionManager
	username  string
}

// NewAuthService creates a new instance of AuthService for the fixed
// admin username.
func NewAuthService(adminRepo repository.AdminRepository, sessions *SessionManager, username string) AuthService {
	return &authService{adminRepo: adminRepo, sessions: sessions, username: username}
}

// Login fetches the admin credential row and compares the submitted
// password against its bcrypt hash. On match it returns a fresh session
// token. No lockout or rate limiting is applied.
func (s *authService) Login(ctx context.Context, password string) (string, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, s.username)
	if err != nil {
		log.Printf("ERROR: [AuthService] Failed to fetch credential row for '%s': %v", s.username, err)
		return "", fmt.Errorf("%w: %v", ErrCredentialLookup, err)
	}
	if admin == nil {
		log.Printf("ERROR: [AuthService] Credential row for '%s' is missing.", s.username)
		return "", ErrCredentialLookup
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		log.Printf("WARN: [AuthService] Failed login attempt for '%s'.", s.username)
		return "", ErrInvalidPassword
	}

	token := s.sessions.Issue()
	log.Printf("INFO: [AuthService] Admin '%s' logged in successfully.", s.username)
	return token, nil
}

// IsAuthenticated reports whether the token belongs to a live admin
// session.
func (s *authService) IsAuthenticated(token string) bool {
	return s.sessions.IsLive(token)
}
