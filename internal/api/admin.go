package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/benlang/jobdetector/internal/models"
)

// AdminFeedbacks fetches one page of the admin feedback listing. Requires an
// admin token; non-admins get a backend rejection.
func (c *Client) AdminFeedbacks(ctx context.Context, page, limit int) (models.FeedbackPage, error) {
	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	data, err := c.get(ctx, "/api/admin/feedbacks", query, true)
	if err != nil {
		return models.FeedbackPage{}, err
	}

	var fp models.FeedbackPage
	if err := json.Unmarshal(data, &fp); err != nil {
		return models.FeedbackPage{}, fmt.Errorf("decode feedback page: %w", err)
	}
	return fp, nil
}

// DeleteFeedback removes a feedback entry by id.
func (c *Client) DeleteFeedback(ctx context.Context, id string) error {
	_, err := c.send(ctx, http.MethodDelete, "/api/admin/feedback/"+url.PathEscape(id), nil, true)
	return err
}
