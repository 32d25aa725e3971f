package playtomic

import "time"

// BookingSummary is one entry of a club booking search.
type BookingSummary struct {
	ID      string  `json:"id"`
	OwnerID *string `json:"owner_id,omitempty"`
}

// Booking is a court reservation a tournament match is played on.
type Booking struct {
	ID         string    `json:"id"`
	Court      string    `json:"court"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Players    []string  `json:"players"`
	TenantID   string    `json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
}

// bookingResponse is the subset of the Playtomic match payload we read.
type bookingResponse struct {
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	ResourceName string                `json:"resource_name"`
	Teams        []bookingTeamResponse `json:"teams"`
	Tenant       bookingTenantResponse `json:"tenant"`
}

type bookingTeamResponse struct {
	TeamID  string                  `json:"team_id"`
	Players []bookingPlayerResponse `json:"players"`
}

type bookingPlayerResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type bookingTenantResponse struct {
	ID   string `json:"tenant_id"`
	Name string `json:"tenant_name"`
}
