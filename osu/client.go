package osu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Default API endpoints.
const (
	DefaultAPIEndpoint   = "https://osu.ppy.sh/api"
	DefaultTrackEndpoint = "https://osutrack-api.ameo.dev"
)

// ErrUserNotFound is returned when a profile lookup comes back empty.
var ErrUserNotFound = errors.New("osu user not found")

// ErrBeatmapNotFound is returned when a beatmap lookup comes back empty.
var ErrBeatmapNotFound = errors.New("beatmap not found")

// ErrInvalidUpdateUser is returned when the osutrack update endpoint rejects
// the account id (HTTP 400). Callers surface this distinctly from generic
// upstream failures.
var ErrInvalidUpdateUser = errors.New("invalid osutrack update user")

// Client wraps the legacy osu! v1 API and the osutrack API. All calls share
// one client-side rate limiter; the v1 API asks for at most ~1 request per
// second sustained.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	apiURL     string
	trackURL   string
}

// NewClient creates an API client. Empty endpoint arguments select the
// production endpoints; tests point them at local servers.
func NewClient(apiKey, apiURL, trackURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIEndpoint
	}
	if trackURL == "" {
		trackURL = DefaultTrackEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 5),
		apiKey:     apiKey,
		apiURL:     apiURL,
		trackURL:   trackURL,
	}
}

// GetUser fetches a profile by user id or username.
func (c *Client) GetUser(ctx context.Context, idOrName string, mode int) (*User, error) {
	params := url.Values{}
	params.Set("k", c.apiKey)
	params.Set("u", idOrName)
	params.Set("m", strconv.Itoa(mode))

	var users []User
	if err := c.post(ctx, c.apiURL+"/get_user", params, &users); err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", idOrName, err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return &users[0], nil
}

// GetBeatmap fetches beatmap metadata by beatmap id.
func (c *Client) GetBeatmap(ctx context.Context, beatmapID string) (*Beatmap, error) {
	params := url.Values{}
	params.Set("k", c.apiKey)
	params.Set("b", beatmapID)

	var beatmaps []Beatmap
	if err := c.post(ctx, c.apiURL+"/get_beatmaps", params, &beatmaps); err != nil {
		return nil, fmt.Errorf("failed to fetch beatmap %s: %w", beatmapID, err)
	}
	if len(beatmaps) == 0 {
		return nil, ErrBeatmapNotFound
	}
	return &beatmaps[0], nil
}

// GetUserBest fetches up to limit of the user's top scores, best first, and
// assigns each score's Ranking from its position in the response.
func (c *Client) GetUserBest(ctx context.Context, idOrName string, limit int) ([]Score, error) {
	params := url.Values{}
	params.Set("k", c.apiKey)
	params.Set("u", idOrName)
	params.Set("limit", strconv.Itoa(limit))

	var scores []Score
	if err := c.post(ctx, c.apiURL+"/get_user_best", params, &scores); err != nil {
		return nil, fmt.Errorf("failed to fetch top scores for %s: %w", idOrName, err)
	}
	for i := range scores {
		scores[i].Ranking = i
	}
	return scores, nil
}

// RequestUpdate triggers an osutrack stats update for the account and returns
// the recorded delta. A 400 response maps to ErrInvalidUpdateUser.
func (c *Client) RequestUpdate(ctx context.Context, osuID string, mode int) (*TrackUpdate, error) {
	params := url.Values{}
	params.Set("user", osuID)
	params.Set("mode", strconv.Itoa(mode))

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.trackURL+"/update?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build update request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request update for %s: %w", osuID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidUpdateUser
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update request for %s returned status %d", osuID, resp.StatusCode)
	}

	var update TrackUpdate
	if err := json.NewDecoder(resp.Body).Decode(&update); err != nil {
		return nil, fmt.Errorf("failed to decode update response for %s: %w", osuID, err)
	}
	return &update, nil
}

// post issues a rate-limited POST with query parameters, the calling
// convention of the v1 API, and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.WithFields(log.Fields{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
			"body":     string(body),
		}).Error("osu API request failed")
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
