package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhosasa/Real-State/internal/auth"
	"github.com/jhosasa/Real-State/internal/cache"
	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/utils"
)

// ErrUserNotFound is returned when a user lookup has no match.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when registering a username that exists.
var ErrUsernameTaken = errors.New("username already in use by another account")

// ErrInvalidCredentials is returned when login verification fails.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrAlertNotFound is returned when an alert lookup has no match.
var ErrAlertNotFound = errors.New("alert not found")

// activityLogCap bounds the stored activity log; activityLogView is how
// many recent entries GetUserActivities returns.
const (
	activityLogCap  = 100
	activityLogView = 20
)

// IUserService defines the interface for user-related operations: accounts,
// favorites, preferences, saved searches, alerts and the activity log. All
// state lives in the Redis key-value store.
type IUserService interface {
	CreateUser(ctx context.Context, username, email, name, password string, role models.UserRole) (*models.User, error)
	FindByID(ctx context.Context, userID utils.SixID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	UpdatePreferences(ctx context.Context, userID utils.SixID, prefs models.UserPreferences) (*models.User, error)
	ToggleFavorite(ctx context.Context, userID, propertyID utils.SixID) ([]utils.SixID, error)
	SaveSearch(ctx context.Context, userID utils.SixID, filters models.SearchFilters) error
	UserContext(ctx context.Context, userID utils.SixID) (models.UserContext, error)
	CreateAlert(ctx context.Context, userID utils.SixID, name string, filters models.SearchFilters) (*models.PropertyAlert, error)
	GetAlert(ctx context.Context, alertID utils.SixID) (*models.PropertyAlert, error)
	GetUserAlerts(ctx context.Context, userID utils.SixID) ([]models.PropertyAlert, error)
	SetAlertActive(ctx context.Context, userID, alertID utils.SixID, active bool) (*models.PropertyAlert, error)
	DeleteAlert(ctx context.Context, userID, alertID utils.SixID) error
	MarkAlertNotified(ctx context.Context, alertID utils.SixID) error
	LogActivity(ctx context.Context, userID utils.SixID, action models.ActivityAction, propertyID *utils.SixID) error
	GetUserActivities(ctx context.Context, userID utils.SixID) ([]models.UserActivity, error)
	GetNotifications(ctx context.Context, userID utils.SixID) ([]json.RawMessage, error)
}

// userService implements IUserService over Redis.
type userService struct {
	rdb *redis.Client
}

// storedUser is the persistence shape. The API model hides the password
// hash from clients (json:"-"), so the stored form carries it explicitly.
type storedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

// NewUserService creates a new UserService.
func NewUserService(rdb *redis.Client) IUserService {
	return &userService{rdb: rdb}
}

func userKey(id utils.SixID) string { return "user:" + id.String() }
func usernameKey(username string) string { return "username:" + username }
func activityKey(id utils.SixID) string { return "user:" + id.String() + ":activity" }
func alertKey(id utils.SixID) string { return "alert:" + id.String() }
func userAlertsKey(id utils.SixID) string { return "user:" + id.String() + ":alerts" }
func notificationsKey(id utils.SixID) string { return "user:" + id.String() + ":notifications" }

// CreateUser registers an account with a bcrypt-hashed password and claims
// the username atomically via SETNX.
func (s *userService) CreateUser(ctx context.Context, username, email, name, password string, role models.UserRole) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:            utils.NewSixID(),
		Username:      username,
		Email:         email,
		Name:          name,
		Role:          role,
		PasswordHash:  hash,
		Favorites:     []utils.SixID{},
		SavedSearches: []models.SearchFilters{},
		AlertsEnabled: true,
		CreatedAt:     time.Now().UTC(),
		IsActive:      true,
	}

	claimed, err := s.rdb.SetNX(ctx, usernameKey(username), user.ID.String(), 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim username %q: %w", username, err)
	}
	if !claimed {
		return nil, ErrUsernameTaken
	}

	if err := s.saveUser(ctx, user); err != nil {
		// Roll back the username claim so the name is not left orphaned.
		s.rdb.Del(ctx, usernameKey(username))
		return nil, err
	}
	return user, nil
}

func (s *userService) saveUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(storedUser{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return fmt.Errorf("failed to marshal user %s: %w", user.ID.String(), err)
	}
	err = cache.Try(func() error {
		return s.rdb.Set(ctx, userKey(user.ID), data, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to store user %s: %w", user.ID.String(), err)
	}
	return nil
}

// FindByID loads a user by ID.
func (s *userService) FindByID(ctx context.Context, userID utils.SixID) (*models.User, error) {
	data, err := s.rdb.Get(ctx, userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID.String(), err)
	}
	var stored storedUser
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", userID.String(), err)
	}
	user := stored.User
	user.PasswordHash = stored.PasswordHash
	return &user, nil
}

// FindByUsername resolves the username index and loads the user.
func (s *userService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	idStr, err := s.rdb.Get(ctx, usernameKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve username %q: %w", username, err)
	}
	id, err := utils.ParseSixID(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt username index for %q: %w", username, err)
	}
	return s.FindByID(ctx, id)
}

// Authenticate verifies credentials and stamps LastLogin on success.
// Unknown usernames and wrong passwords both map to ErrInvalidCredentials.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePreferences replaces the profile preferences.
func (s *userService) UpdatePreferences(ctx context.Context, userID utils.SixID, prefs models.UserPreferences) (*models.User, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Preferences = prefs
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleFavorite adds the property to the favorites set, or removes it if
// already present, and returns the updated set. The toggle is recorded in
// the activity log.
func (s *userService) ToggleFavorite(ctx context.Context, userID, propertyID utils.SixID) ([]utils.SixID, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed := false
	favorites := make([]utils.SixID, 0, len(user.Favorites)+1)
	for _, id := range user.Favorites {
		if id == propertyID {
			removed = true
			continue
		}
		favorites = append(favorites, id)
	}
	if !removed {
		favorites = append(favorites, propertyID)
	}
	user.Favorites = favorites

	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.LogActivity(ctx, userID, models.ActivityFavorite, &propertyID); err != nil {
		log.Printf("WARN: failed to log favorite activity for user %s: %v", userID.String(), err)
	}
	return favorites, nil
}

// SaveSearch appends a filter set to the user's saved searches.
func (s *userService) SaveSearch(ctx context.Context, userID utils.SixID, filters models.SearchFilters) error {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.SavedSearches = append(user.SavedSearches, filters)
	return s.saveUser(ctx, user)
}

// UserContext assembles the recommendation inputs for a user: the favorites
// set and the preferred price band. A missing user yields an empty context
// (no favorites, unbounded prices) rather than an error, so recommendations
// degrade gracefully for anonymous callers.
func (s *userService) UserContext(ctx context.Context, userID utils.SixID) (models.UserContext, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.UserContext{Favorites: map[utils.SixID]struct{}{}}, nil
		}
		return models.UserContext{}, err
	}
	favorites := make(map[utils.SixID]struct{}, len(user.Favorites))
	for _, id := range user.Favorites {
		favorites[id] = struct{}{}
	}
	return models.UserContext{
		Favorites: favorites,
		MinPrice:  user.Preferences.MinPrice,
		MaxPrice:  user.Preferences.MaxPrice,
	}, nil
}

// CreateAlert stores a property alert and indexes it under the user.
func (s *userService) CreateAlert(ctx context.Context, userID utils.SixID, name string, filters models.SearchFilters) (*models.PropertyAlert, error) {
	if _, err := s.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	alert := &models.PropertyAlert{
		ID:        utils.NewSixID(),
		UserID:    userID,
		Name:      name,
		Filters:   filters,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.saveAlert(ctx, alert); err != nil {
		return nil, err
	}
	if err := s.rdb.SAdd(ctx, userAlertsKey(userID), alert.ID.String()).Err(); err != nil {
		return nil, fmt.Errorf("failed to index alert %s: %w", alert.ID.String(), err)
	}
	if err := s.LogActivity(ctx, userID, models.ActivityAlert, nil); err != nil {
		log.Printf("WARN: failed to log alert activity for user %s: %v", userID.String(), err)
	}
	return alert, nil
}

func (s *userService) saveAlert(ctx context.Context, alert *models.PropertyAlert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert %s: %w", alert.ID.String(), err)
	}
	if err := s.rdb.Set(ctx, alertKey(alert.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store alert %s: %w", alert.ID.String(), err)
	}
	return nil
}

// GetAlert loads one alert by ID.
func (s *userService) GetAlert(ctx context.Context, alertID utils.SixID) (*models.PropertyAlert, error) {
	data, err := s.rdb.Get(ctx, alertKey(alertID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to load alert %s: %w", alertID.String(), err)
	}
	var alert models.PropertyAlert
	if err := json.Unmarshal([]byte(data), &alert); err != nil {
		return nil, fmt.Errorf("failed to decode alert %s: %w", alertID.String(), err)
	}
	return &alert, nil
}

// GetUserAlerts loads every alert indexed under the user. Dangling index
// entries (alert deleted mid-listing) are skipped.
func (s *userService) GetUserAlerts(ctx context.Context, userID utils.SixID) ([]models.PropertyAlert, error) {
	ids, err := s.rdb.SMembers(ctx, userAlertsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts for user %s: %w", userID.String(), err)
	}
	alerts := make([]models.PropertyAlert, 0, len(ids))
	for _, idStr := range ids {
		id, parseErr := utils.ParseSixID(idStr)
		if parseErr != nil {
			continue
		}
		alert, getErr := s.GetAlert(ctx, id)
		if getErr != nil {
			continue
		}
		alerts = append(alerts, *alert)
	}
	return alerts, nil
}

// SetAlertActive toggles an alert on or off. Only the owner may change it.
func (s *userService) SetAlertActive(ctx context.Context, userID, alertID utils.SixID, active bool) (*models.PropertyAlert, error) {
	alert, err := s.GetAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert.UserID != userID {
		return nil, ErrAlertNotFound
	}
	alert.IsActive = active
	if err := s.saveAlert(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// DeleteAlert removes an alert and its index entry. Only the owner may
// delete it.
func (s *userService) DeleteAlert(ctx context.Context, userID, alertID utils.SixID) error {
	alert, err := s.GetAlert(ctx, alertID)
	if err != nil {
		return err
	}
	if alert.UserID != userID {
		return ErrAlertNotFound
	}
	if err := s.rdb.Del(ctx, alertKey(alertID)).Err(); err != nil {
		return fmt.Errorf("failed to delete alert %s: %w", alertID.String(), err)
	}
	if err := s.rdb.SRem(ctx, userAlertsKey(userID), alertID.String()).Err(); err != nil {
		return fmt.Errorf("failed to unindex alert %s: %w", alertID.String(), err)
	}
	return nil
}

// MarkAlertNotified stamps LastNotified; called by the alert-match task.
func (s *userService) MarkAlertNotified(ctx context.Context, alertID utils.SixID) error {
	alert, err := s.GetAlert(ctx, alertID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	alert.LastNotified = &now
	return s.saveAlert(ctx, alert)
}

// LogActivity prepends an entry to the user's activity log, keeping at most
// activityLogCap entries.
func (s *userService) LogActivity(ctx context.Context, userID utils.SixID, action models.ActivityAction, propertyID *utils.SixID) error {
	entry := models.UserActivity{
		ID:         uuid.NewString(),
		UserID:     userID,
		Action:     action,
		PropertyID: propertyID,
		Timestamp:  time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal activity entry: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, activityKey(userID), data)
	pipe.LTrim(ctx, activityKey(userID), 0, activityLogCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append activity for user %s: %w", userID.String(), err)
	}
	return nil
}

// GetNotifications returns the most recent alert notifications, newest
// first. Entries are returned as raw JSON; the task worker owns the shape.
func (s *userService) GetNotifications(ctx context.Context, userID utils.SixID) ([]json.RawMessage, error) {
	raw, err := s.rdb.LRange(ctx, notificationsKey(userID), 0, activityLogView-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications for user %s: %w", userID.String(), err)
	}
	notifications := make([]json.RawMessage, 0, len(raw))
	for _, item := range raw {
		notifications = append(notifications, json.RawMessage(item))
	}
	return notifications, nil
}

// GetUserActivities returns the most recent activity entries, newest first.
func (s *userService) GetUserActivities(ctx context.Context, userID utils.SixID) ([]models.UserActivity, error) {
	raw, err := s.rdb.LRange(ctx, activityKey(userID), 0, activityLogView-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read activity for user %s: %w", userID.String(), err)
	}
	activities := make([]models.UserActivity, 0, len(raw))
	for _, item := range raw {
		var entry models.UserActivity
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		activities = append(activities, entry)
	}
	return activities, nil
}
