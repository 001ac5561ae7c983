package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	r := gin.New()
	r.POST("/auth/verify-mfa", VerifyMFA)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyMFARejectsDisabledAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := setupAuthRouter(t)

	require.NoError(t, config.DB.Create(&models.User{
		Email:    "locked@example.com",
		Password: "x",
		MFACode:  "123456",
		Disabled: true,
	}).Error)

	// a valid code must not unlock a disabled account
	w := postJSON(r, "/auth/verify-mfa", gin.H{"email": "locked@example.com", "code": "123456"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "token")
}

func TestVerifyMFAIssuesTokenAndClearsCode(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := setupAuthRouter(t)

	require.NoError(t, config.DB.Create(&models.User{
		Email:    "dana@example.com",
		Password: "x",
		MFACode:  "654321",
	}).Error)

	w := postJSON(r, "/auth/verify-mfa", gin.H{"email": "dana@example.com", "code": "654321"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	// the code is single-use
	var u models.User
	require.NoError(t, config.DB.First(&u, "email = ?", "dana@example.com").Error)
	assert.Empty(t, u.MFACode)

	w = postJSON(r, "/auth/verify-mfa", gin.H{"email": "dana@example.com", "code": "654321"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
