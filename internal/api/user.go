package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/benlang/jobdetector/internal/models"
)

// Favorites fetches the authenticated user's favorited companies.
func (c *Client) Favorites(ctx context.Context) ([]models.Company, error) {
	data, err := c.get(ctx, "/api/user/favorites", nil, true)
	if err != nil {
		return nil, err
	}

	var favorites []models.Company
	if err := json.Unmarshal(data, &favorites); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return favorites, nil
}

// SavedSearches fetches the authenticated user's saved searches.
func (c *Client) SavedSearches(ctx context.Context) ([]models.SavedSearch, error) {
	data, err := c.get(ctx, "/api/user/searches", nil, true)
	if err != nil {
		return nil, err
	}

	var searches []models.SavedSearch
	if err := json.Unmarshal(data, &searches); err != nil {
		return nil, fmt.Errorf("decode saved searches: %w", err)
	}
	return searches, nil
}

// SaveSearch stores the given criteria under a name, optionally subscribing
// to email alerts for new matches.
func (c *Client) SaveSearch(ctx context.Context, name string, criteria map[string]any, emailAlert bool) error {
	payload := map[string]any{
		"name":        name,
		"criteria":    criteria,
		"email_alert": emailAlert,
	}
	_, err := c.send(ctx, http.MethodPost, "/api/user/searches", payload, true)
	return err
}

// DeleteSearch removes a saved search by id.
func (c *Client) DeleteSearch(ctx context.Context, id string) error {
	_, err := c.send(ctx, http.MethodDelete, "/api/user/searches/"+url.PathEscape(id), nil, true)
	return err
}

// SetSearchAlert toggles the email alert flag of a saved search.
func (c *Client) SetSearchAlert(ctx context.Context, id string, enabled bool) error {
	payload := map[string]bool{"email_alert": enabled}
	_, err := c.send(ctx, http.MethodPatch, "/api/user/searches/"+url.PathEscape(id), payload, true)
	return err
}

// SubmitFeedback sends user feedback. Works both authenticated and
// anonymous; the optional email gives the team a way to reply.
func (c *Client) SubmitFeedback(ctx context.Context, content, email string) error {
	payload := map[string]string{"content": content, "email": email}
	_, err := c.send(ctx, http.MethodPost, "/api/feedback", payload, true)
	return err
}
