// api/models/render.go
package models

import "time"

// Snippet kinds recorded for each render.
const (
	KindBasicInit = "basic_init"
	KindCampaign  = "campaign_init"
	KindEvent     = "event"
	KindPageview  = "virtual_pageview"
	KindSocial    = "social"
)

// RenderEvent is one generated snippet, stored in ClickHouse.
type RenderEvent struct {
	EventID   string    `json:"eventId"`
	Kind      string    `json:"kind"`
	AccountID string    `json:"accountId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	Wrapped   bool      `json:"wrapped"`
	CodeBytes uint32    `json:"codeBytes"`
}

type RenderCountByTime struct {
	Time  time.Time `json:"time"`
	Kind  *string   `json:"kind,omitempty"`
	Count uint64    `json:"count"`
}

type TopAccountResult struct {
	AccountID string `json:"accountId"`
	Count     uint64 `json:"count"`
}

// SnippetResponse is the JSON body returned for every rendered snippet.
type SnippetResponse struct {
	Kind string `json:"kind"`
	Code string `json:"code"`
}
