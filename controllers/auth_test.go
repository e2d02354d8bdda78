package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fundarhq/fundar/backend/middleware"
	"github.com/fundarhq/fundar/backend/models"
	"github.com/fundarhq/fundar/backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAPISuite(tb testing.TB) (func(tb testing.TB), *gin.Engine, *services.TokenService) {
	dbName := "database_api_test.db"

	e := os.Remove(dbName)
	if e != nil && !strings.Contains(e.Error(), "no such file or directory") {
		log.Fatal(e)
	}

	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Project{}, &models.Category{}, &models.Donation{}, &models.FileUpload{}); err != nil {
		log.Fatal(err)
	}

	models.DB = &models.Database{GormDB: gdb}

	tokens := services.NewTokenService([]byte("api-test-secret"), time.Hour)
	auth := services.NewAuthenticator(models.DB, tokens, services.LogMailer{})
	google := services.NewGoogleResolver(models.DB, tokens, "id", "secret",
		"http://localhost:3001/auth/google/callback", "http://localhost:3000")
	authController := AuthController{Auth: auth, Google: google}

	r := gin.New()
	store := cookie.NewStore([]byte("session-test-secret"))
	r.Use(sessions.Sessions("fundar-session", store))

	r.POST("/auth/signin", authController.SignIn)
	r.POST("/auth/signup", authController.SignUp)
	r.GET("/auth/google", authController.GoogleLogin)
	r.GET("/auth/google/callback", authController.GoogleCallback)

	r.GET("/projects", ListProjects)
	r.GET("/projects/:id", GetProject)
	r.GET("/categories", ListCategories)
	r.GET("/categories/:id", GetCategory)

	authorized := r.Group("/")
	authorized.Use(middleware.BearerTokenAuth(tokens))
	authorized.GET("/users/:id", GetUser)
	authorized.PUT("/users/:id", UpdateUser)
	authorized.POST("/donations", CreateDonation)
	authorized.GET("/donations/:id", GetDonation)
	storer, err := services.NewDiskFileStorer(tb.TempDir(), "/static/uploads")
	if err != nil {
		log.Fatal(err)
	}
	authorized.POST("/files/upload/:id", FilesController{Storer: storer}.Upload)
	authorized.POST("/payments/create-session", PaymentsController{Gateway: services.LocalPaymentGateway{}}.CreateSession)

	admin := r.Group("/")
	admin.Use(middleware.BearerTokenAuth(tokens), middleware.RequireRole(models.AdminRole))
	admin.GET("/users", ListUsers)
	admin.PUT("/users/:id/role", UpdateUserRole)
	admin.DELETE("/users/:id", DeleteUser)
	admin.POST("/projects", CreateProject)
	admin.POST("/categories", CreateCategory)

	return func(tb testing.TB) {
		if err := os.Remove(dbName); err != nil {
			log.Fatal(err)
		}
	}, r, tokens
}

func postJSON(r *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignUpSignInFlow(t *testing.T) {
	teardown, r, _ := setupAPISuite(t)
	defer teardown(t)

	// register
	w := postJSON(r, "/auth/signup", `{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"password": "hunter22"
	}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var signUpResp struct {
		User models.User `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &signUpResp))
	assert.Equal(t, models.RegularRole, signUpResp.User.Role)

	// the digest never leaves the server
	assert.NotContains(t, w.Body.String(), "password")

	// sign in with the right password
	w = postJSON(r, "/auth/signin", `{"email": "ada@example.com", "password": "hunter22"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var signInResp struct {
		AccessToken string      `json:"access_token"`
		User        models.User `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &signInResp))
	assert.NotEmpty(t, signInResp.AccessToken)
	assert.Equal(t, models.RegularRole, signInResp.User.Role)

	// wrong password
	w = postJSON(r, "/auth/signin", `{"email": "ada@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// duplicate registration
	w = postJSON(r, "/auth/signup", `{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"password": "hunter22"
	}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignUpIgnoresCallerRole(t *testing.T) {
	teardown, r, _ := setupAPISuite(t)
	defer teardown(t)

	// a role field in the payload is silently dropped
	w := postJSON(r, "/auth/signup", `{
		"firstName": "Eve",
		"lastName": "Mallory",
		"email": "eve@example.com",
		"password": "hunter22",
		"role": "admin"
	}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		User models.User `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.RegularRole, resp.User.Role)
}

func TestSignUpValidation(t *testing.T) {
	teardown, r, _ := setupAPISuite(t)
	defer teardown(t)

	// short password
	w := postJSON(r, "/auth/signup", `{
		"firstName": "Ada",
		"lastName": "L",
		"email": "ada@example.com",
		"password": "abc"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// malformed email
	w = postJSON(r, "/auth/signin", `{"email": "not-an-email", "password": "hunter22"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoogleLoginRedirectsToConsentPage(t *testing.T) {
	teardown, r, _ := setupAPISuite(t)
	defer teardown(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "accounts.google.com")
	assert.Contains(t, location, "state=")
	// the state nonce lives in the session cookie
	assert.NotEmpty(t, w.Header().Get("Set-Cookie"))
}

func TestGoogleCallbackStateMismatch(t *testing.T) {
	teardown, r, _ := setupAPISuite(t)
	defer teardown(t)

	// no session state at all, any presented state must be rejected
	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=forged&code=x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/google-error")
}

func TestGoogleCallbackProviderError(t *testing.T) {
	teardown, r, _ := setupAPISuite(t)
	defer teardown(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?error=access_denied", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/google-error")
}
