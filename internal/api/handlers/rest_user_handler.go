package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/jhosasa/Real-State/internal/api/middleware"
	"github.com/jhosasa/Real-State/internal/auth"
	"github.com/jhosasa/Real-State/internal/config"
	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/services"
	"github.com/jhosasa/Real-State/internal/tasks"
	"github.com/jhosasa/Real-State/internal/utils"
)

// IAsynqClient defines the interface for enqueuing tasks, allowing mocking.
type IAsynqClient interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RestUserHandler handles REST requests for accounts, favorites, alerts
// and the activity log.
type RestUserHandler struct {
	cfg         *config.Config
	userService services.IUserService
	taskClient  IAsynqClient
}

// NewRestUserHandler creates a new RestUserHandler.
func NewRestUserHandler(cfg *config.Config, userService services.IUserService, taskClient IAsynqClient) *RestUserHandler {
	return &RestUserHandler{
		cfg:         cfg,
		userService: userService,
		taskClient:  taskClient,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// currentUserID extracts the authenticated user ID set by the auth
// middleware. A false return means the response has been written.
func currentUserID(c *gin.Context) (utils.SixID, bool) {
	raw, exists := c.Get(middleware.ContextKeyUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return utils.SixID{}, false
	}
	id, err := utils.ParseSixID(raw.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return utils.SixID{}, false
	}
	return id, true
}

// Register handles POST /v1/auth/register. New accounts always start as
// seekers; roles are elevated out of band.
func (h *RestUserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if matched, err := regexp.MatchString(h.cfg.PasswordRegexp, req.Password); err != nil || !matched {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password does not meet the strength requirements"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username, req.Email, req.Name, req.Password, models.RoleSeeker)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already in use"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /v1/auth/login and issues a JWT on success.
func (h *RestUserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Role, h.cfg.JwtSecret, h.cfg.JwtTTL)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GetProfile handles GET /v1/me.
func (h *RestUserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdatePreferences handles PUT /v1/me/preferences.
func (h *RestUserHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var prefs models.UserPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.UpdatePreferences(c.Request.Context(), userID, prefs)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// ToggleFavorite handles POST /v1/me/favorites/:id. The same call adds or
// removes; the response carries the resulting favorites set.
func (h *RestUserHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	propertyID, err := utils.ParseSixID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID format"})
		return
	}

	favorites, err := h.userService.ToggleFavorite(c.Request.Context(), userID, propertyID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// SaveSearch handles POST /v1/me/searches.
func (h *RestUserHandler) SaveSearch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var filters models.SearchFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.userService.SaveSearch(c.Request.Context(), userID, filters); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save search"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

type createAlertRequest struct {
	Name    string               `json:"name" binding:"required"`
	Filters models.SearchFilters `json:"filters"`
}

// CreateAlert handles POST /v1/me/alerts. A freshly created alert is
// evaluated once in the background so matches surface immediately.
func (h *RestUserHandler) CreateAlert(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	alert, err := h.userService.CreateAlert(c.Request.Context(), userID, req.Name, req.Filters)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alert"})
		return
	}

	if task, taskErr := tasks.NewAlertMatchTask(alert.ID); taskErr == nil {
		if _, enqErr := h.taskClient.Enqueue(task); enqErr != nil {
			log.Printf("WARN: failed to enqueue match task for alert %s: %v", alert.ID.String(), enqErr)
		}
	}

	c.JSON(http.StatusCreated, alert)
}

// GetAlerts handles GET /v1/me/alerts.
func (h *RestUserHandler) GetAlerts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	alerts, err := h.userService.GetUserAlerts(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": alerts})
}

type setAlertActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetAlertActive handles PATCH /v1/me/alerts/:id.
func (h *RestUserHandler) SetAlertActive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	alertID, err := utils.ParseSixID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert ID format"})
		return
	}

	var req setAlertActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	alert, err := h.userService.SetAlertActive(c.Request.Context(), userID, alertID, *req.IsActive)
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alert"})
		return
	}

	c.JSON(http.StatusOK, alert)
}

// DeleteAlert handles DELETE /v1/me/alerts/:id.
func (h *RestUserHandler) DeleteAlert(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	alertID, err := utils.ParseSixID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert ID format"})
		return
	}

	if err := h.userService.DeleteAlert(c.Request.Context(), userID, alertID); err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete alert"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetActivities handles GET /v1/me/activity.
func (h *RestUserHandler) GetActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	activities, err := h.userService.GetUserActivities(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": activities})
}

// GetNotifications handles GET /v1/me/notifications.
func (h *RestUserHandler) GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.userService.GetNotifications(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notifications})
}
