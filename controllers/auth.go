package controllers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dchest/uniuri"
	"github.com/fundarhq/fundar/backend/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const oauthStateKey = "oauth_state"

type AuthController struct {
	Auth   *services.Authenticator
	Google *services.GoogleResolver
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signUpRequest struct {
	FirstName string     `json:"firstName" binding:"required"`
	LastName  string     `json:"lastName" binding:"required"`
	Email     string     `json:"email" binding:"required,email"`
	Password  string     `json:"password" binding:"required,min=6"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Country   string     `json:"country"`
	City      string     `json:"city"`
	BirthDate *time.Time `json:"birthDate"`
	ImageURL  string     `json:"imageUrl"`
}

// SignIn authenticates an email/password pair and returns a bearer token.
// Unknown email and wrong password are deliberately indistinguishable.
func (a AuthController) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sign-in payload"})
		return
	}

	token, user, err := a.Auth.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		slog.Error("sign-in failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error signing in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         user,
	})
}

// SignUp registers a new account. The caller cannot pick a role, new
// accounts are always regular users.
func (a AuthController) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sign-up payload"})
		return
	}

	user, err := a.Auth.SignUp(services.SignUpRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
		Phone:     req.Phone,
		Country:   req.Country,
		City:      req.City,
		BirthDate: req.BirthDate,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
			return
		}
		slog.Error("sign-up failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error signing up"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GoogleLogin starts the federated flow: a state nonce goes to the session
// and the client is sent to the provider consent page.
func (a AuthController) GoogleLogin(c *gin.Context) {
	state := uniuri.New()

	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		slog.Error("failed to save oauth state to session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error starting Google sign-in"})
		return
	}

	c.Redirect(http.StatusFound, a.Google.AuthCodeURL(state))
}

// GoogleCallback finishes the federated flow. Every failure redirects to the
// frontend error page, the user is never left at a blank page.
func (a AuthController) GoogleCallback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		slog.Warn("provider returned an oauth error", "error", providerErr)
		c.Redirect(http.StatusFound, a.Google.ErrorRedirectURL("Error in Google OAuth callback"))
		return
	}

	session := sessions.Default(c)
	expectedState, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)
	if err := session.Save(); err != nil {
		slog.Warn("failed to clear oauth state from session", "error", err)
	}

	state := c.Query("state")
	if expectedState == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expectedState)) != 1 {
		slog.Warn("oauth state mismatch")
		c.Redirect(http.StatusFound, a.Google.ErrorRedirectURL("Invalid OAuth state"))
		return
	}

	code := c.Query("code")
	if code == "" {
		slog.Warn("oauth callback without code parameter")
		c.Redirect(http.StatusFound, a.Google.ErrorRedirectURL("Missing authorization code"))
		return
	}

	user, _, err := a.Google.ResolveCallback(c.Request.Context(), code)
	if err != nil {
		slog.Error("failed to resolve google callback", "error", err)
		c.Redirect(http.StatusFound, a.Google.ErrorRedirectURL("Error in Google OAuth callback"))
		return
	}

	token, err := a.Google.Tokens.Issue(user.ID, user.Role, user.Email)
	if err != nil {
		slog.Error("failed to issue token for federated user", "userId", user.ID, "error", err)
		c.Redirect(http.StatusFound, a.Google.ErrorRedirectURL("Error in Google OAuth callback"))
		return
	}

	c.Redirect(http.StatusFound, a.Google.SuccessRedirectURL(token, user))
}
