package models

import (
	"time"

	"github.com/jhosasa/Real-State/internal/utils"
)

// UserRole drives which dashboard and operations a user can reach.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleAgent  UserRole = "agent"
	RoleSeeker UserRole = "seeker"
)

// UserPreferences holds the search preferences a user has saved on their
// profile. The recommendation engine reads the price band from here.
type UserPreferences struct {
	MinPrice      *float64 `json:"min_price,omitempty"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
	PropertyTypes []string `json:"property_types,omitempty"`
	Cities        []string `json:"cities,omitempty"`
	MinBedrooms   *int     `json:"min_bedrooms,omitempty"`
	MaxBedrooms   *int     `json:"max_bedrooms,omitempty"`
	Features      []string `json:"features,omitempty"`
}

// User is a marketplace account.
type User struct {
	ID            utils.SixID     `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Role          UserRole        `json:"role"`
	PasswordHash  string          `json:"-"`
	Preferences   UserPreferences `json:"preferences"`
	Favorites     []utils.SixID   `json:"favorites"`
	SavedSearches []SearchFilters `json:"saved_searches"`
	AlertsEnabled bool            `json:"alerts_enabled"`
	CreatedAt     time.Time       `json:"created_at"`
	LastLogin     *time.Time      `json:"last_login,omitempty"`
	IsActive      bool            `json:"is_active"`
}

// ActivityAction enumerates the user actions worth recording.
type ActivityAction string

const (
	ActivityView     ActivityAction = "view"
	ActivityFavorite ActivityAction = "favorite"
	ActivitySearch   ActivityAction = "search"
	ActivityAlert    ActivityAction = "alert"
)

// UserActivity is one entry of the per-user activity log.
type UserActivity struct {
	ID         string         `json:"id"`
	UserID     utils.SixID    `json:"user_id"`
	Action     ActivityAction `json:"action"`
	PropertyID *utils.SixID   `json:"property_id,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// PropertyAlert is a saved search a user wants to be notified about.
type PropertyAlert struct {
	ID           utils.SixID   `json:"id"`
	UserID       utils.SixID   `json:"user_id"`
	Name         string        `json:"name"`
	Filters      SearchFilters `json:"filters"`
	IsActive     bool          `json:"is_active"`
	CreatedAt    time.Time     `json:"created_at"`
	LastNotified *time.Time    `json:"last_notified,omitempty"`
}
