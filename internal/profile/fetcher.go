package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Profile holds a user's physical attributes as returned by the backend.
// Individual fields are optional; a nil pointer means the backend did not
// supply that attribute.
type Profile struct {
	ID            int64    `json:"id"`
	Age           *int     `json:"age"`
	HeightCm      *float64 `json:"height"`
	WeightKg      *float64 `json:"weight"`
	Gender        *string  `json:"gender"`
	ActivityLevel *string  `json:"activityLevel"`
}

// Fetcher retrieves user profiles from the backend REST endpoint. Lookup
// failures of any kind degrade to absence: profile data is optional context,
// never a blocking dependency.
type Fetcher struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewFetcher(baseURL string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With(slog.String("component", "profile-fetcher")),
	}
}

// Fetch returns the profile for userID, or nil when the identifier is invalid
// or the backend lookup fails for any reason. No network call is attempted
// for non-positive identifiers.
func (f *Fetcher) Fetch(ctx context.Context, userID int64) *Profile {
	if userID <= 0 {
		return nil
	}

	url := fmt.Sprintf("%s/api/users/%d", f.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Warn("building profile request", slog.String("error", err.Error()))
		return nil
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("fetching profile", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("profile lookup failed", slog.Int64("user_id", userID), slog.Int("status", resp.StatusCode))
		return nil
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		f.logger.Warn("decoding profile", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil
	}

	f.logger.Debug("profile retrieved", slog.Int64("user_id", userID))
	return &p
}
