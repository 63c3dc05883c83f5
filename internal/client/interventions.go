// ABOUTME: Interventions facade for ordreIntervention CRUD against the gateway
// ABOUTME: Interventions link back to a work order and carry a report text

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Intervention is the gateway's ordreIntervention entity.
type Intervention struct {
	ID               int64      `json:"id,omitempty"`
	Titre            string     `json:"titre"`
	Description      string     `json:"description"`
	DateCreation     *time.Time `json:"dateCreation,omitempty"`
	Priorite         string     `json:"priorité,omitempty"`
	Statut           string     `json:"statut,omitempty"`
	Rapport          string     `json:"rapport,omitempty"`
	DateIntervention *time.Time `json:"dateIntervention,omitempty"`
	OrdreTravailID   int64      `json:"ordreTravailId,omitempty"`
}

// InterventionsService groups the intervention endpoints.
type InterventionsService struct {
	c *Client
}

// List fetches all interventions.
func (s *InterventionsService) List(ctx context.Context) ([]Intervention, error) {
	var out []Intervention
	if err := s.c.call(ctx, http.MethodGet, "/api/ordreIntervention/retrieve-all-ordreInterventions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single intervention by id.
func (s *InterventionsService) Get(ctx context.Context, id int64) (*Intervention, error) {
	var out Intervention
	path := fmt.Sprintf("/api/ordreIntervention/retrieve-ordreIntervention/%d", id)
	if err := s.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds an intervention and returns the stored entity.
func (s *InterventionsService) Create(ctx context.Context, iv Intervention) (*Intervention, error) {
	var out Intervention
	if err := s.c.call(ctx, http.MethodPost, "/api/ordreIntervention/add-ordreIntervention", iv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an intervention and returns the stored entity.
func (s *InterventionsService) Update(ctx context.Context, iv Intervention) (*Intervention, error) {
	var out Intervention
	if err := s.c.call(ctx, http.MethodPut, "/api/ordreIntervention/update-ordreIntervention", iv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an intervention by id.
func (s *InterventionsService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/ordreIntervention/delete-ordreIntervention/%d", id)
	return s.c.call(ctx, http.MethodDelete, path, nil, nil)
}
