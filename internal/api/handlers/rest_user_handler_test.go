package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jhosasa/Real-State/internal/api/handlers"
	"github.com/jhosasa/Real-State/internal/config"
	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/services"
	"github.com/jhosasa/Real-State/internal/tasks"
	"github.com/jhosasa/Real-State/internal/utils"
)

func testUserConfig() *config.Config {
	return &config.Config{
		JwtSecret:      "test-secret",
		JwtTTL:         time.Hour,
		PasswordRegexp: "^.{8,}$",
	}
}

func setupUserRouter(userSvc *MockUserService, taskClient *MockAsynqClient, userID *utils.SixID) *gin.Engine {
	h := handlers.NewRestUserHandler(testUserConfig(), userSvc, taskClient)
	r := gin.New()
	r.POST("/v1/auth/register", h.Register)
	r.POST("/v1/auth/login", h.Login)

	me := r.Group("/v1/me")
	if userID != nil {
		me.Use(setUser(*userID))
	}
	me.GET("", h.GetProfile)
	me.PUT("/preferences", h.UpdatePreferences)
	me.POST("/favorites/:id", h.ToggleFavorite)
	me.POST("/searches", h.SaveSearch)
	me.POST("/alerts", h.CreateAlert)
	me.GET("/alerts", h.GetAlerts)
	me.PATCH("/alerts/:id", h.SetAlertActive)
	me.DELETE("/alerts/:id", h.DeleteAlert)
	me.GET("/activity", h.GetActivities)
	me.GET("/notifications", h.GetNotifications)
	return r
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	assert.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestRegister(t *testing.T) {
	userSvc := new(MockUserService)
	r := setupUserRouter(userSvc, new(MockAsynqClient), nil)

	created := &models.User{ID: utils.NewSixID(), Username: "alice", Role: models.RoleSeeker}
	userSvc.On("CreateUser", mock.Anything, "alice", "alice@example.com", "Alice", "supersecret1", models.RoleSeeker).
		Return(created, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/auth/register", jsonBody(t, map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "supersecret1",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	userSvc.AssertExpectations(t)
}

func TestRegister_WeakPassword(t *testing.T) {
	userSvc := new(MockUserService)
	r := setupUserRouter(userSvc, new(MockAsynqClient), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/auth/register", jsonBody(t, map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "short",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userSvc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_UsernameTaken(t *testing.T) {
	userSvc := new(MockUserService)
	r := setupUserRouter(userSvc, new(MockAsynqClient), nil)

	userSvc.On("CreateUser", mock.Anything, "bob", "bob@example.com", "Bob", "supersecret1", models.RoleSeeker).
		Return(nil, services.ErrUsernameTaken)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/auth/register", jsonBody(t, map[string]string{
		"username": "bob",
		"email":    "bob@example.com",
		"name":     "Bob",
		"password": "supersecret1",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_IssuesToken(t *testing.T) {
	userSvc := new(MockUserService)
	r := setupUserRouter(userSvc, new(MockAsynqClient), nil)

	user := &models.User{ID: utils.NewSixID(), Username: "carol", Role: models.RoleSeeker}
	userSvc.On("Authenticate", mock.Anything, "carol", "supersecret1").Return(user, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/auth/login", jsonBody(t, map[string]string{
		"username": "carol",
		"password": "supersecret1",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "carol", body.User.Username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	userSvc := new(MockUserService)
	r := setupUserRouter(userSvc, new(MockAsynqClient), nil)

	userSvc.On("Authenticate", mock.Anything, "carol", "wrong").
		Return(nil, services.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/auth/login", jsonBody(t, map[string]string{
		"username": "carol",
		"password": "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfile(t *testing.T) {
	userSvc := new(MockUserService)
	userID := utils.NewSixID()
	r := setupUserRouter(userSvc, new(MockAsynqClient), &userID)

	userSvc.On("FindByID", mock.Anything, userID).
		Return(&models.User{ID: userID, Username: "dave"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dave")
}

func TestGetProfile_Unauthenticated(t *testing.T) {
	r := setupUserRouter(new(MockUserService), new(MockAsynqClient), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleFavorite(t *testing.T) {
	userSvc := new(MockUserService)
	userID := utils.NewSixID()
	propertyID := utils.NewSixID()
	r := setupUserRouter(userSvc, new(MockAsynqClient), &userID)

	userSvc.On("ToggleFavorite", mock.Anything, userID, propertyID).
		Return([]utils.SixID{propertyID}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/me/favorites/"+propertyID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), propertyID.String())
}

func TestCreateAlert_EnqueuesMatchTask(t *testing.T) {
	userSvc := new(MockUserService)
	taskClient := new(MockAsynqClient)
	userID := utils.NewSixID()
	r := setupUserRouter(userSvc, taskClient, &userID)

	alert := &models.PropertyAlert{ID: utils.NewSixID(), UserID: userID, Name: "Miami homes", IsActive: true}
	userSvc.On("CreateAlert", mock.Anything, userID, "Miami homes", mock.Anything).Return(alert, nil)
	taskClient.On("Enqueue", mock.MatchedBy(func(task *asynq.Task) bool {
		return task.Type() == tasks.TypeAlertMatch
	}), mock.Anything).Return(nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/me/alerts", jsonBody(t, map[string]interface{}{
		"name":    "Miami homes",
		"filters": map[string]string{"city": "Miami"},
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	taskClient.AssertExpectations(t)
}

func TestSetAlertActive(t *testing.T) {
	userSvc := new(MockUserService)
	userID := utils.NewSixID()
	alertID := utils.NewSixID()
	r := setupUserRouter(userSvc, new(MockAsynqClient), &userID)

	updated := &models.PropertyAlert{ID: alertID, UserID: userID, IsActive: false}
	userSvc.On("SetAlertActive", mock.Anything, userID, alertID, false).Return(updated, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/v1/me/alerts/"+alertID.String(), jsonBody(t, map[string]bool{
		"is_active": false,
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	userSvc.AssertExpectations(t)
}

func TestDeleteAlert_NotOwned(t *testing.T) {
	userSvc := new(MockUserService)
	userID := utils.NewSixID()
	alertID := utils.NewSixID()
	r := setupUserRouter(userSvc, new(MockAsynqClient), &userID)

	userSvc.On("DeleteAlert", mock.Anything, userID, alertID).Return(services.ErrAlertNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/v1/me/alerts/"+alertID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetActivities(t *testing.T) {
	userSvc := new(MockUserService)
	userID := utils.NewSixID()
	r := setupUserRouter(userSvc, new(MockAsynqClient), &userID)

	userSvc.On("GetUserActivities", mock.Anything, userID).
		Return([]models.UserActivity{{Action: models.ActivityView}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/me/activity", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.ActivityView))
}

func TestGetNotifications(t *testing.T) {
	userSvc := new(MockUserService)
	userID := utils.NewSixID()
	r := setupUserRouter(userSvc, new(MockAsynqClient), &userID)

	userSvc.On("GetNotifications", mock.Anything, userID).
		Return([]json.RawMessage{json.RawMessage(`{"alert_name":"Miami homes"}`)}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/me/notifications", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Miami homes")
}
