// ABOUTME: Plannings facade for maintenance schedule CRUD against the gateway
// ABOUTME: A planning is a date window typed per department

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Planning is the gateway's planning entity.
type Planning struct {
	ID           int64      `json:"id,omitempty"`
	DateDebut    *time.Time `json:"dateDebut,omitempty"`
	DateFin      *time.Time `json:"dateFin,omitempty"`
	TypePlanning string     `json:"typePlanning,omitempty"`
	Department   string     `json:"department,omitempty"`
}

// PlanningsService groups the planning endpoints.
type PlanningsService struct {
	c *Client
}

// List fetches all plannings.
func (s *PlanningsService) List(ctx context.Context) ([]Planning, error) {
	var out []Planning
	if err := s.c.call(ctx, http.MethodGet, "/api/planning/retrieve-all-plannings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single planning by id.
func (s *PlanningsService) Get(ctx context.Context, id int64) (*Planning, error) {
	var out Planning
	path := fmt.Sprintf("/api/planning/retrieve-planning/%d", id)
	if err := s.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a planning and returns the stored entity.
func (s *PlanningsService) Create(ctx context.Context, p Planning) (*Planning, error) {
	var out Planning
	if err := s.c.call(ctx, http.MethodPost, "/api/planning/add-planning", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a planning and returns the stored entity.
func (s *PlanningsService) Update(ctx context.Context, p Planning) (*Planning, error) {
	var out Planning
	if err := s.c.call(ctx, http.MethodPut, "/api/planning/update-planning", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a planning by id.
func (s *PlanningsService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/planning/delete-planning/%d", id)
	return s.c.call(ctx, http.MethodDelete, path, nil, nil)
}
