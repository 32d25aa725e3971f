package playtomic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/rafa-garcia/go-playtomic-api/models"
)

const dateLayout = "2006-01-02T15:04:05"

// APIClient is a Playtomic API client scoped to a single club.
type APIClient struct {
	httpClient *http.Client
	apiClient  *client.Client
	BaseURL    string
	TenantID   string
}

// NewClient creates a new Playtomic client for the given club.
func NewClient(tenantID string) PlaytomicClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiClient: client.NewClient(
			client.WithTimeout(10*time.Second),
			client.WithRetries(3),
		),
		BaseURL:  "https://api.playtomic.io",
		TenantID: tenantID,
	}
}

// Ensure APIClient implements the PlaytomicClient interface.
var _ PlaytomicClient = (*APIClient)(nil)

// ListBookings returns the club's padel bookings starting on or after from.
func (c *APIClient) ListBookings(from time.Time) ([]BookingSummary, error) {
	if c.TenantID == "" {
		return nil, fmt.Errorf("playtomic tenant is not configured")
	}
	const pageSize = 300
	var (
		bookings []BookingSummary
		page     = 0
	)
	for {
		params := &models.SearchMatchesParams{
			SportID:       "PADEL",
			HasPlayers:    true,
			Sort:          "start_date,ASC",
			TenantIDs:     []string{c.TenantID},
			FromStartDate: from.Format("2006-01-02") + "T00:00:00",
			Size:          pageSize,
			Page:          page,
		}
		log.Debug("Fetching bookings from Playtomic API", "params", params)
		matches, err := c.apiClient.GetMatches(context.Background(), params)
		if err != nil {
			return nil, fmt.Errorf("error fetching bookings from playtomic api: %w", err)
		}
		for _, m := range matches {
			bookings = append(bookings, BookingSummary{ID: m.MatchID, OwnerID: m.OwnerID})
		}
		if len(matches) < pageSize {
			break
		}
		page++
	}
	log.Info("Fetched bookings", "count", len(bookings), "from", from.Format("2006-01-02"))
	return bookings, nil
}

// GetBooking fetches a single booking by its Playtomic match ID.
func (c *APIClient) GetBooking(bookingID string) (Booking, error) {
	url := fmt.Sprintf("%s/v1/matches/%s", c.BaseURL, bookingID)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "PadelTournament/1.0")
	log.Debug("Requesting booking from Playtomic API", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Booking{}, ErrBookingNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Playtomic API", "status", resp.StatusCode, "body", string(body))
		return Booking{}, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var payload bookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Booking{}, fmt.Errorf("failed to decode response: %w", err)
	}
	start, err := time.Parse(dateLayout, payload.StartDate)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to parse start time: %w", err)
	}
	end, err := time.Parse(dateLayout, payload.EndDate)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to parse end time: %w", err)
	}

	booking := Booking{
		ID:         bookingID,
		Court:      payload.ResourceName,
		Start:      start,
		End:        end,
		TenantID:   payload.Tenant.ID,
		TenantName: payload.Tenant.Name,
	}
	for _, team := range payload.Teams {
		for _, player := range team.Players {
			if player.Name != "" {
				booking.Players = append(booking.Players, player.Name)
			}
		}
	}
	return booking, nil
}
