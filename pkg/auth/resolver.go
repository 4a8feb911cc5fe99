package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"job-copilot/internal/domain"
)

// Resolver turns a bearer token into a user id by asking the auth
// provider's user endpoint. Any failure resolves to Unauthorized; the
// pipeline never runs without an identity.
type Resolver struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewResolver(baseURL, anonKey string) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		anonKey: anonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Resolver) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	req.Header.Set("apikey", r.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.http.Do(req)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.ErrUnauthorized
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil || user.ID == "" {
		return "", domain.ErrUnauthorized
	}
	return user.ID, nil
}
