// api/models/profile.go
package models

import (
	"encoding/json"
	"time"
)

// Profile is a stored ga.js account with the custom variables registered on it.
type Profile struct {
	ID         int         `json:"id"`
	UserID     int         `json:"userId"`
	AccountID  string      `json:"accountId"`
	Name       string      `json:"name"`
	CreatedAt  time.Time   `json:"createdAt"`
	CustomVars []CustomVar `json:"customVars,omitempty"`
}

// CustomVar is a stored _setCustomVar registration. Rows are returned in the
// order they were added.
type CustomVar struct {
	ID        int       `json:"id"`
	ProfileID int       `json:"profileId"`
	Index     int       `json:"index"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Scope     int       `json:"scope"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateProfileRequest struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
}

type CustomVarRequest struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Scope int    `json:"scope" binding:"omitempty,min=1,max=3"`
}

type CampaignRequest struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
	Content  string `json:"content"`
	Term     string `json:"term"`
	Referrer string `json:"referrer"`
}

// EventRequest accepts value as a JSON number or a numeric string. It is
// omitted when zero and truncated to an integer otherwise.
type EventRequest struct {
	Category string      `json:"category"`
	Action   string      `json:"action"`
	Label    string      `json:"label"`
	Value    json.Number `json:"value"`
	Wrap     bool        `json:"wrap"`
}

type PageviewRequest struct {
	URL  string `json:"url"`
	Wrap bool   `json:"wrap"`
}

type SocialRequest struct {
	Network  string `json:"network"`
	Action   string `json:"action"`
	Target   string `json:"target"`
	PagePath string `json:"pagePath"`
	Wrap     bool   `json:"wrap"`
}
