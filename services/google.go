package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/fundarhq/fundar/backend/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrInvalidProviderProfile means the provider profile lacked the fields we
// need, most importantly the email.
var ErrInvalidProviderProfile = errors.New("invalid provider profile")

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProfile is the subset of the provider profile the backend consumes.
type GoogleProfile struct {
	Email     string
	FirstName string
	LastName  string
}

// GoogleResolver drives the federated sign-in flow: consent redirect, code
// exchange, profile fetch and local user resolution. No intermediate state
// is kept server-side beyond the session nonce the controller manages.
type GoogleResolver struct {
	DB          *models.Database
	Tokens      *TokenService
	OAuth       *oauth2.Config
	FrontendURL string

	// overridable in tests
	userInfoURL string
}

func NewGoogleResolver(db *models.Database, tokens *TokenService, clientID string, clientSecret string, redirectURL string, frontendURL string) *GoogleResolver {
	return &GoogleResolver{
		DB:     db,
		Tokens: tokens,
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		FrontendURL: strings.TrimSuffix(frontendURL, "/"),
		userInfoURL: googleUserInfoURL,
	}
}

// AuthCodeURL returns the provider consent URL for the given state nonce.
func (r *GoogleResolver) AuthCodeURL(state string) string {
	return r.OAuth.AuthCodeURL(state)
}

// ResolveCallback exchanges the authorization code, fetches the profile and
// resolves or creates the local user.
func (r *GoogleResolver) ResolveCallback(ctx context.Context, code string) (*models.User, GoogleProfile, error) {
	token, err := r.OAuth.Exchange(ctx, code)
	if err != nil {
		return nil, GoogleProfile{}, fmt.Errorf("failed to exchange code: %w", err)
	}

	profile, err := r.fetchProfile(ctx, token)
	if err != nil {
		return nil, GoogleProfile{}, err
	}

	user, err := r.FindOrCreateUser(profile.Email, profile.FirstName, profile.LastName)
	if err != nil {
		return nil, GoogleProfile{}, err
	}

	return user, profile, nil
}

func (r *GoogleResolver) fetchProfile(ctx context.Context, token *oauth2.Token) (GoogleProfile, error) {
	client := r.OAuth.Client(ctx, token)
	resp, err := client.Get(r.userInfoURL)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return GoogleProfile{}, fmt.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var userInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return GoogleProfile{}, fmt.Errorf("failed to decode user info: %w", err)
	}

	if userInfo.Email == "" {
		return GoogleProfile{}, ErrInvalidProviderProfile
	}

	firstName, lastName := SplitDisplayName(userInfo.Name)
	return GoogleProfile{Email: userInfo.Email, FirstName: firstName, LastName: lastName}, nil
}

// SplitDisplayName splits at the first space. A single-word name yields an
// empty last name; multi-word last names stay intact.
func SplitDisplayName(displayName string) (string, string) {
	firstName, lastName, _ := strings.Cut(displayName, " ")
	return firstName, lastName
}

// FindOrCreateUser returns the existing record for the email unchanged, the
// provider profile never overwrites names on repeat logins. Missing records
// are created with the regular role and no local secret.
func (r *GoogleResolver) FindOrCreateUser(email string, firstName string, lastName string) (*models.User, error) {
	user, err := r.DB.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	slog.Info("creating user from federated profile")
	user = &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      models.RegularRole,
		Provider:  "google",
	}
	return r.DB.CreateUser(user)
}

// SuccessRedirectURL builds the frontend redirect carrying the issued token
// and profile fields as query parameters.
func (r *GoogleResolver) SuccessRedirectURL(token string, user *models.User) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", user.Email)
	q.Set("firstName", user.FirstName)
	q.Set("lastName", user.LastName)
	q.Set("role", string(user.Role))
	return fmt.Sprintf("%s/google-success?%s", r.FrontendURL, q.Encode())
}

// ErrorRedirectURL sends the user to the frontend error page rather than
// dropping them at a blank page.
func (r *GoogleResolver) ErrorRedirectURL(message string) string {
	q := url.Values{}
	q.Set("error", message)
	return fmt.Sprintf("%s/google-error?%s", r.FrontendURL, q.Encode())
}
