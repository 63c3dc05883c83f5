// ABOUTME: Users facade for account CRUD against the gateway
// ABOUTME: User mirrors the user-service entity, password write-only

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// User is the gateway's user entity. Password is write-only: the gateway
// never echoes it, and we never persist it.
type User struct {
	ID         int64      `json:"id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Email      string     `json:"email"`
	Password   string     `json:"password,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	CIN        string     `json:"cin,omitempty"`
	Role       string     `json:"role,omitempty"`
	Department string     `json:"department,omitempty"`
	Status     string     `json:"status,omitempty"`
	Avatar     string     `json:"avatar,omitempty"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// UsersService groups the user management endpoints.
type UsersService struct {
	c *Client
}

// List fetches all users.
func (s *UsersService) List(ctx context.Context) ([]User, error) {
	var out []User
	if err := s.c.call(ctx, http.MethodGet, "/api/user/retrieve-all-users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single user by id.
func (s *UsersService) Get(ctx context.Context, id int64) (*User, error) {
	var out User
	path := fmt.Sprintf("/api/user/retrieve-user/%d", id)
	if err := s.c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a user and returns the stored entity.
func (s *UsersService) Create(ctx context.Context, u User) (*User, error) {
	var out User
	if err := s.c.call(ctx, http.MethodPost, "/api/user/add-user", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a user and returns the stored entity.
func (s *UsersService) Update(ctx context.Context, u User) (*User, error) {
	var out User
	if err := s.c.call(ctx, http.MethodPut, "/api/user/update-user", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a user by id.
func (s *UsersService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/user/delete-user/%d", id)
	return s.c.call(ctx, http.MethodDelete, path, nil, nil)
}
