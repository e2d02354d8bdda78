package services

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fundarhq/fundar/backend/models"
)

func setupGoogleSuite(tb testing.TB) (func(tb testing.TB), *GoogleResolver) {
	dbName := "database_google_test.db"

	e := os.Remove(dbName)
	if e != nil && !strings.Contains(e.Error(), "no such file or directory") {
		log.Fatal(e)
	}

	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatal(err)
	}

	db := &models.Database{GormDB: gdb}
	tokens := NewTokenService([]byte("google-test-secret"), time.Hour)
	resolver := NewGoogleResolver(db, tokens, "client-id", "client-secret",
		"http://localhost:3001/auth/google/callback", "http://localhost:3000/")

	return func(tb testing.TB) {
		if err := os.Remove(dbName); err != nil {
			log.Fatal(err)
		}
	}, resolver
}

func TestSplitDisplayName(t *testing.T) {
	first, last := SplitDisplayName("Ada Lovelace")
	assert.Equal(t, "Ada", first)
	assert.Equal(t, "Lovelace", last)

	// everything after the first space belongs to the last name
	first, last = SplitDisplayName("Juan Carlos de la Vega")
	assert.Equal(t, "Juan", first)
	assert.Equal(t, "Carlos de la Vega", last)

	first, last = SplitDisplayName("Madonna")
	assert.Equal(t, "Madonna", first)
	assert.Equal(t, "", last)

	first, last = SplitDisplayName("")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}

func TestFindOrCreateUserIdempotent(t *testing.T) {
	teardown, resolver := setupGoogleSuite(t)
	defer teardown(t)

	created, err := resolver.FindOrCreateUser("ada@example.com", "Ada", "Lovelace")
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, models.RegularRole, created.Role)
	assert.Equal(t, "google", created.Provider)
	assert.Empty(t, created.PasswordDigest)

	// repeat logins never touch the stored names
	again, err := resolver.FindOrCreateUser("ada@example.com", "Changed", "Name")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "Ada", again.FirstName)
	assert.Equal(t, "Lovelace", again.LastName)
}

func TestFetchProfile(t *testing.T) {
	teardown, resolver := setupGoogleSuite(t)
	defer teardown(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer provider-access-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email": "ada@example.com", "name": "Ada Lovelace"}`))
	}))
	defer srv.Close()
	resolver.userInfoURL = srv.URL

	profile, err := resolver.fetchProfile(context.Background(), &oauth2.Token{AccessToken: "provider-access-token"})
	assert.NoError(t, err)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "Lovelace", profile.LastName)
}

func TestFetchProfileMissingEmail(t *testing.T) {
	teardown, resolver := setupGoogleSuite(t)
	defer teardown(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "Ada Lovelace"}`))
	}))
	defer srv.Close()
	resolver.userInfoURL = srv.URL

	_, err := resolver.fetchProfile(context.Background(), &oauth2.Token{AccessToken: "x"})
	assert.ErrorIs(t, err, ErrInvalidProviderProfile)
}

func TestSuccessRedirectURL(t *testing.T) {
	teardown, resolver := setupGoogleSuite(t)
	defer teardown(t)

	user := &models.User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Role:      models.RegularRole,
	}
	redirect := resolver.SuccessRedirectURL("signed-token", user)

	parsed, err := url.Parse(redirect)
	assert.NoError(t, err)
	assert.Equal(t, "/google-success", parsed.Path)
	assert.Equal(t, "signed-token", parsed.Query().Get("token"))
	assert.Equal(t, "ada@example.com", parsed.Query().Get("email"))
	assert.Equal(t, "Ada", parsed.Query().Get("firstName"))
	assert.Equal(t, "Lovelace", parsed.Query().Get("lastName"))
	assert.Equal(t, "user", parsed.Query().Get("role"))
}

func TestErrorRedirectURL(t *testing.T) {
	teardown, resolver := setupGoogleSuite(t)
	defer teardown(t)

	redirect := resolver.ErrorRedirectURL("access denied")
	parsed, err := url.Parse(redirect)
	assert.NoError(t, err)
	assert.Equal(t, "/google-error", parsed.Path)
	assert.Equal(t, "access denied", parsed.Query().Get("error"))
}
