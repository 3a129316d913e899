package models

import "github.com/jhosasa/Real-State/internal/utils"

// Agent is a real-estate agent referenced by listings via AgentID.
// The reference is lookup-only; agents do not own listing lifecycle.
type Agent struct {
	ID          utils.SixID `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Avatar      string      `json:"avatar,omitempty"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"review_count"`
	Company     string      `json:"company"`
	Verified    bool        `json:"verified"`
	Specialties []string    `json:"specialties,omitempty"`
	Experience  int         `json:"experience"` // years
	Languages   []string    `json:"languages,omitempty"`
}
