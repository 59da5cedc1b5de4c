package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dkalenko/medfact/internal/model"
)

// Admin CRUD surface. Every method here requires a bearer token from the
// configured TokenSource; a 401 triggers the unauthorized hook so the
// session can be torn down.

// ListClaims returns all stored claims
func (c *Client) ListClaims(ctx context.Context) ([]model.Claim, error) {
	var claims []model.Claim
	if err := c.doJSON(ctx, http.MethodGet, "/claims/", nil, &claims, true); err != nil {
		return nil, err
	}
	return claims, nil
}

// GetClaim fetches a single claim by id
func (c *Client) GetClaim(ctx context.Context, id int64) (*model.Claim, error) {
	var claim model.Claim
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/claims/%d/", id), nil, &claim, true); err != nil {
		return nil, err
	}
	return &claim, nil
}

// UpdateClaim replaces a claim record
func (c *Client) UpdateClaim(ctx context.Context, claim model.Claim) (*model.Claim, error) {
	var updated model.Claim
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/claims/%d/", claim.ID), claim, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteClaim removes a claim record
func (c *Client) DeleteClaim(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/claims/%d/", id), nil, nil, true)
}

// ListSources returns all source records
func (c *Client) ListSources(ctx context.Context) ([]model.Source, error) {
	var sources []model.Source
	if err := c.doJSON(ctx, http.MethodGet, "/admin/sources/", nil, &sources, true); err != nil {
		return nil, err
	}
	return sources, nil
}

// CreateSource adds a source record
func (c *Client) CreateSource(ctx context.Context, src model.Source) (*model.Source, error) {
	var created model.Source
	if err := c.doJSON(ctx, http.MethodPost, "/admin/sources/", src, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSource replaces a source record
func (c *Client) UpdateSource(ctx context.Context, src model.Source) (*model.Source, error) {
	var updated model.Source
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/sources/%d/", src.ID), src, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSource removes a source record
func (c *Client) DeleteSource(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/sources/%d/", id), nil, nil, true)
}

// ListJournals returns all journal records
func (c *Client) ListJournals(ctx context.Context) ([]model.Journal, error) {
	var journals []model.Journal
	if err := c.doJSON(ctx, http.MethodGet, "/admin/journals/", nil, &journals, true); err != nil {
		return nil, err
	}
	return journals, nil
}

// CreateJournal adds a journal record
func (c *Client) CreateJournal(ctx context.Context, j model.Journal) (*model.Journal, error) {
	var created model.Journal
	if err := c.doJSON(ctx, http.MethodPost, "/admin/journals/", j, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateJournal replaces a journal record
func (c *Client) UpdateJournal(ctx context.Context, j model.Journal) (*model.Journal, error) {
	var updated model.Journal
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/journals/%d/", j.ID), j, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteJournal removes a journal record
func (c *Client) DeleteJournal(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/journals/%d/", id), nil, nil, true)
}

// ListDisputes returns all disputes
func (c *Client) ListDisputes(ctx context.Context) ([]model.Dispute, error) {
	var disputes []model.Dispute
	if err := c.doJSON(ctx, http.MethodGet, "/admin/disputes/", nil, &disputes, true); err != nil {
		return nil, err
	}
	return disputes, nil
}

// ResolveDispute sets the review status on a dispute
func (c *Client) ResolveDispute(ctx context.Context, id int64, status model.DisputeStatus) (*model.Dispute, error) {
	body := struct {
		Status model.DisputeStatus `json:"status"`
	}{Status: status}

	var updated model.Dispute
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/admin/disputes/%d/", id), body, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}
