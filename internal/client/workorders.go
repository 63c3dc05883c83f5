// ABOUTME: Work orders facade for ordreTravail CRUD against the gateway
// ABOUTME: Includes the assign and status-transition endpoints

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// WorkOrder is the gateway's ordreTravail entity. The priority key carries
// the accent the gateway serializes.
type WorkOrder struct {
	ID           int64      `json:"id,omitempty"`
	Titre        string     `json:"titre"`
	Description  string     `json:"description"`
	DateCreation *time.Time `json:"dateCreation,omitempty"`
	Priorite     string     `json:"priorité,omitempty"`
	Statut       string     `json:"statut,omitempty"`
	AssignedTo   int64      `json:"assignedTo,omitempty"`
}

// WorkOrdersService groups the work order endpoints.
type WorkOrdersService struct {
	c *Client
}

// List fetches all work orders.
func (s *WorkOrdersService) List(ctx context.Context) ([]WorkOrder, error) {
	var out []WorkOrder
	if err := s.c.call(ctx, http.MethodGet, "/api/ordreTravail/retrieve-all-ordreTravails", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single work order by id.
func (s *WorkOrdersService) Get(ctx context.Context, id int64) (*WorkOrder, error) {
	var out WorkOrder
	path := fmt.Sprintf("/api/ordreTravail/retrieve-ordreTravail/%d", id)
	if err := s.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a work order and returns the stored entity.
func (s *WorkOrdersService) Create(ctx context.Context, w WorkOrder) (*WorkOrder, error) {
	var out WorkOrder
	if err := s.c.call(ctx, http.MethodPost, "/api/ordreTravail/add-ordreTravail", w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a work order and returns the stored entity.
func (s *WorkOrdersService) Update(ctx context.Context, w WorkOrder) (*WorkOrder, error) {
	var out WorkOrder
	if err := s.c.call(ctx, http.MethodPut, "/api/ordreTravail/update-ordreTravail", w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Assign routes a work order to a technician. The gateway takes the
// technician id as a query parameter, not a body.
func (s *WorkOrdersService) Assign(ctx context.Context, id, technicienID int64) (*WorkOrder, error) {
	var out WorkOrder
	path := fmt.Sprintf("/api/ordreTravail/assign-ordreTravail/%d?technicienId=%d", id, technicienID)
	if err := s.c.call(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus transitions a work order's status. The target status is a
// query parameter; the gateway owns the transition rules, and an illegal
// transition comes back as a 4xx.
func (s *WorkOrdersService) UpdateStatus(ctx context.Context, id int64, statut string) (*WorkOrder, error) {
	var out WorkOrder
	path := fmt.Sprintf("/api/ordreTravail/update-status-ordreTravail/%d?statut=%s", id, url.QueryEscape(statut))
	if err := s.c.call(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a work order by id.
func (s *WorkOrdersService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/ordreTravail/delete-ordreTravail/%d", id)
	return s.c.call(ctx, http.MethodDelete, path, nil, nil)
}
