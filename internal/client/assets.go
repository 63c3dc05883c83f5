// ABOUTME: Assets facade for machine CRUD against the gateway
// ABOUTME: Machine mirrors the asset-service entity field-for-field

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Machine is the gateway's asset entity. The wire keys are the gateway's,
// accents and the misspelled "Mainenance" included; changing them here would
// silently drop fields.
type Machine struct {
	ID                       int64      `json:"id,omitempty"`
	Nom                      string     `json:"nom"`
	Type                     string     `json:"type"`
	Emplacement              string     `json:"emplacement"`
	Statut                   string     `json:"statut,omitempty"`
	AssetStatus              string     `json:"assetStatus,omitempty"`
	Condition                string     `json:"condition,omitempty"`
	Criticality              string     `json:"criticality,omitempty"`
	Model                    string     `json:"model,omitempty"`
	SerialNumber             string     `json:"serialNumber,omitempty"`
	Manufacturer             string     `json:"manufacturer,omitempty"`
	InstalledDate            *time.Time `json:"installedDate,omitempty"`
	DateDerniereMaintenance  *time.Time `json:"dateDernièreMaintenance,omitempty"`
	DateProchaineMaintenance *time.Time `json:"dateProchaineMainenance,omitempty"`
}

// AssetsService groups the machine endpoints.
type AssetsService struct {
	c *Client
}

// List fetches all machines.
func (s *AssetsService) List(ctx context.Context) ([]Machine, error) {
	var out []Machine
	if err := s.c.call(ctx, http.MethodGet, "/api/machine/retrieve-all-machines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single machine by id.
func (s *AssetsService) Get(ctx context.Context, id int64) (*Machine, error) {
	var out Machine
	path := fmt.Sprintf("/api/machine/retrieve-machine/%d", id)
	if err := s.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a machine and returns the stored entity.
func (s *AssetsService) Create(ctx context.Context, m Machine) (*Machine, error) {
	var out Machine
	if err := s.c.call(ctx, http.MethodPost, "/api/machine/add-machine", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a machine and returns the stored entity.
func (s *AssetsService) Update(ctx context.Context, m Machine) (*Machine, error) {
	var out Machine
	if err := s.c.call(ctx, http.MethodPut, "/api/machine/update-machine", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a machine by id.
func (s *AssetsService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/machine/delete-machine/%d", id)
	return s.c.call(ctx, http.MethodDelete, path, nil, nil)
}
