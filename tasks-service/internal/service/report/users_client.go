package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
)

// UsersClient fetches the calling user's profile from users-service,
// forwarding the same identity headers this service was called with.
type UsersClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewUsersClient(baseURL string, timeout time.Duration) *UsersClient {
	return &UsersClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *UsersClient) GetUser(ctx context.Context, current identity.CurrentUser) (UserProfile, error) {
	var profile UserProfile

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users", nil)
	if err != nil {
		return profile, fmt.Errorf("failed to create request: %w", err)
	}
	identity.SetHeaders(req.Header, current)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return profile, fmt.Errorf("users-service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return profile, fmt.Errorf("users-service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return profile, fmt.Errorf("failed to decode user profile: %w", err)
	}
	return profile, nil
}
