package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/irisdash/dashboard-api/internal/constants"
	"github.com/irisdash/dashboard-api/internal/database"
	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/irisdash/dashboard-api/internal/repository"
	"github.com/irisdash/dashboard-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	tokenRepo   repository.TokenRepository
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.RegistrationToken{},
		&models.Note{},
		&models.NoteAttachment{},
		&models.Task{},
		&models.Chat{},
		&models.Message{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		tokenRepo:   repository.NewTokenRepository(db),
	}
}

func registerPayload(username string, token string) []byte {
	body, _ := json.Marshal(map[string]string{
		"username":         username,
		"password":         "supersecret",
		"confirm_password": "supersecret",
		"email":            username + "@example.com",
		"name":             "Test " + username,
		"token":            token,
	})
	return body
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/register", env.handler.Register)
	r.POST("/api/auth/login", env.handler.Login)
	return r
}

func TestAuthHandler_FirstRegistrationBecomesOriginalAdmin(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload("founder", "")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "founder").First(&user).Error)
	require.True(t, user.IsAdmin)
	require.True(t, user.IsOriginalAdmin)
}

func TestAuthHandler_SecondRegistrationRequiresToken(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload("founder", "")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload("second", "")))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_TokenIsSingleUse(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.Register(services.RegisterInput{
		Username:        "founder",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Email:           "founder@example.com",
		Name:            "Founder",
	})
	require.NoError(t, err)

	require.NoError(t, env.tokenRepo.Create(&models.RegistrationToken{
		Token:     "abc12345",
		CreatedBy: 1,
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload("alice", "abc12345")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// Second redemption of the same token loses the conditional update.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload("bob", "abc12345")))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestAuthHandler_DuplicateUsernameConflicts(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(registerPayload("founder", "")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, env.tokenRepo.Create(&models.RegistrationToken{Token: "tok1", CreatedBy: 1}))

	body, _ := json.Marshal(map[string]string{
		"username":         "founder",
		"password":         "supersecret",
		"confirm_password": "supersecret",
		"email":            "other@example.com",
		"name":             "Other",
		"token":            "tok1",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_PasswordMismatchRejected(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	body, _ := json.Marshal(map[string]string{
		"username":         "founder",
		"password":         "supersecret",
		"confirm_password": "different1",
		"email":            "founder@example.com",
		"name":             "Founder",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginMarksOnlineAndSetsSession(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.Register(services.RegisterInput{
		Username:        "founder",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Email:           "founder@example.com",
		Name:            "Founder",
	})
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{
		"username": "founder",
		"password": "supersecret",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")

	var user models.User
	require.NoError(t, env.db.Where("username = ?", "founder").First(&user).Error)
	require.True(t, user.IsOnline)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.Register(services.RegisterInput{
		Username:        "founder",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Email:           "founder@example.com",
		Name:            "Founder",
	})
	require.NoError(t, err)

	for _, username := range []string{"founder", "nobody"} {
		body, _ := json.Marshal(map[string]string{
			"username": username,
			"password": "wrongpass1",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		// Same response whether or not the username exists.
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
}
