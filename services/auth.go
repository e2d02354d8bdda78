package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fundarhq/fundar/backend/models"
	"github.com/fundarhq/fundar/backend/segment"
)

// Auth errors surfaced to controllers.
var (
	// ErrInvalidCredentials covers unknown email, federated-only account and
	// password mismatch alike, callers must not learn which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email is already registered")
)

// SignUpRequest carries the fields accepted at registration. There is
// deliberately no role field: new accounts always start as regular users and
// only an admin can elevate them afterwards.
type SignUpRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Address   string
	Phone     string
	Country   string
	City      string
	BirthDate *time.Time
	ImageURL  string
}

// Authenticator validates email/password pairs against the credential store
// and hands out bearer tokens. All collaborators are passed in explicitly so
// tests can substitute them.
type Authenticator struct {
	DB     *models.Database
	Tokens *TokenService
	Mailer Mailer
}

func NewAuthenticator(db *models.Database, tokens *TokenService, mailer Mailer) *Authenticator {
	return &Authenticator{DB: db, Tokens: tokens, Mailer: mailer}
}

// SignIn checks the credentials and issues a token on success. Unknown
// emails, federated-only accounts and wrong passwords are indistinguishable
// to the caller.
func (a *Authenticator) SignIn(email string, password string) (string, *models.User, error) {
	user, err := a.DB.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("error fetching user: %w", err)
	}
	if user == nil {
		slog.Warn("sign-in attempt for unknown email")
		return "", nil, ErrInvalidCredentials
	}
	if user.PasswordDigest == "" {
		slog.Warn("sign-in attempt for federated-only account", "userId", user.ID)
		return "", nil, ErrInvalidCredentials
	}
	if !CheckPassword(password, user.PasswordDigest) {
		slog.Warn("sign-in attempt with wrong password", "userId", user.ID)
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.Tokens.Issue(user.ID, user.Role, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("error issuing token: %w", err)
	}

	segment.TrackSignIn(user)
	return token, user, nil
}

// SignUp registers a new credential record. The role is always the regular
// one regardless of what the caller sent. A welcome mail is attempted after
// the record exists, its failure is logged and never rolls anything back.
func (a *Authenticator) SignUp(req SignUpRequest) (*models.User, error) {
	existing, err := a.DB.GetUserByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	digest, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PasswordDigest: digest,
		Role:           models.RegularRole,
		Address:        req.Address,
		Phone:          req.Phone,
		Country:        req.Country,
		City:           req.City,
		BirthDate:      req.BirthDate,
		ImageURL:       req.ImageURL,
	}

	user, err = a.DB.CreateUser(user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	if a.Mailer != nil {
		body := fmt.Sprintf("Hello %s, thank you for registering!", user.FullName())
		if err := a.Mailer.SendMail(user.Email, "Welcome to Fundar.", body); err != nil {
			slog.Error("failed to send welcome mail", "userId", user.ID, "error", err)
		}
	}

	segment.IdentifyUser(user)
	segment.TrackSignUp(user)
	return user, nil
}
