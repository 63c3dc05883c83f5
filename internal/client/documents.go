// ABOUTME: Rapports and archives facades against the document service
// ABOUTME: Read-heavy: generated reports and the file archive catalog

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"time"
)

// Rapport is a generated intervention report.
type Rapport struct {
	ID             int64      `json:"id,omitempty"`
	InterventionID int64      `json:"interventionId,omitempty"`
	Titre          string     `json:"titre"`
	Description    string     `json:"description,omitempty"`
	Archive        *Archive   `json:"archive,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// Archive is a stored file record in the archive catalog.
type Archive struct {
	ID               int64      `json:"id,omitempty"`
	Filename         string     `json:"filename"`
	OriginalFilename string     `json:"originalFilename,omitempty"`
	ContentType      string     `json:"contentType,omitempty"`
	ChecksumSHA256   string     `json:"checksumSha256,omitempty"`
	SizeBytes        int64      `json:"sizeBytes,omitempty"`
	Type             string     `json:"type,omitempty"`
	Version          int        `json:"version,omitempty"`
	LinkedEntityType string     `json:"linkedEntityType,omitempty"`
	LinkedEntityID   int64      `json:"linkedEntityId,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// ArchiveStats summarizes the archive catalog.
type ArchiveStats struct {
	TotalCount int64 `json:"totalCount"`
	TotalBytes int64 `json:"totalBytes"`
}

// RapportsService groups the report endpoints.
type RapportsService struct {
	c *Client
}

// List fetches all reports.
func (s *RapportsService) List(ctx context.Context) ([]Rapport, error) {
	var out []Rapport
	if err := s.c.call(ctx, http.MethodGet, "/api/rapports", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ForIntervention fetches the reports linked to an intervention.
func (s *RapportsService) ForIntervention(ctx context.Context, interventionID int64) ([]Rapport, error) {
	var out []Rapport
	path := fmt.Sprintf("/api/rapports/intervention/%d", interventionID)
	if err := s.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Generate uploads a report document for an intervention. The document
// service takes the metadata as multipart form fields and the document
// itself as the "file" part.
func (s *RapportsService) Generate(ctx context.Context, interventionID int64, titre, description, filename string, file io.Reader) (*Rapport, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("interventionId", fmt.Sprint(interventionID))
	mw.WriteField("titre", titre)
	if description != "" {
		mw.WriteField("description", description)
	}
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out Rapport
	if err := s.c.callRaw(ctx, http.MethodPost, "/api/rapports/generate", buf.Bytes(), mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArchivesService groups the archive catalog endpoints.
type ArchivesService struct {
	c *Client
}

// List fetches the whole archive catalog.
func (s *ArchivesService) List(ctx context.Context) ([]Archive, error) {
	var out []Archive
	if err := s.c.call(ctx, http.MethodGet, "/api/archives", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByType fetches archives of one type.
func (s *ArchivesService) ByType(ctx context.Context, archiveType string) ([]Archive, error) {
	var out []Archive
	path := "/api/archives/type/" + url.PathEscape(archiveType)
	if err := s.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Linked fetches archives attached to an entity (USER, MACHINE, WORK_ORDER,
// INTERVENTION, PLANNING).
func (s *ArchivesService) Linked(ctx context.Context, entityType string, entityID int64) ([]Archive, error) {
	var out []Archive
	q := url.Values{"entityType": {entityType}, "entityId": {fmt.Sprint(entityID)}}
	if err := s.c.call(ctx, http.MethodGet, "/api/archives/linked?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single archive record by id.
func (s *ArchivesService) Get(ctx context.Context, id int64) (*Archive, error) {
	var out Archive
	path := fmt.Sprintf("/api/archives/%d", id)
	if err := s.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Statistics fetches totals for the archive catalog.
func (s *ArchivesService) Statistics(ctx context.Context) (*ArchiveStats, error) {
	var out ArchiveStats
	if err := s.c.call(ctx, http.MethodGet, "/api/archives/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an archive record by id.
func (s *ArchivesService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/archives/%d", id)
	return s.c.call(ctx, http.MethodDelete, path, nil, nil)
}
