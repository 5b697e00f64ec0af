package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a decoded error response paired with its HTTP status.
type APIError struct {
	Status      int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Description)
}

// Client talks to a keyhold server. The zero token makes unauthenticated
// requests; WithToken returns a copy bound to a session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a shallow copy of the client that sends the given
// session token on every request.
func (c *Client) WithToken(token string) *Client {
	bound := *c
	bound.token = token
	return &bound
}

// do issues a JSON request and decodes the response into out (which may be
// nil). Non-2xx responses decode into an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return &APIError{Status: resp.StatusCode, Code: "unknown_error"}
		}
		return &APIError{
			Status:      resp.StatusCode,
			Code:        apiErr.Error,
			Description: apiErr.ErrorDescription,
		}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/v1/auth/register", req, &user)
	return user, err
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{Username: username, Password: password}, &resp)
	return resp, err
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/v1/me", nil, &user)
	return user, err
}

func (c *Client) CreateProperty(ctx context.Context, req PropertyRequest) (Property, error) {
	var p Property
	err := c.do(ctx, http.MethodPost, "/v1/properties", req, &p)
	return p, err
}

func (c *Client) ListProperties(ctx context.Context) ([]Property, error) {
	var list []Property
	err := c.do(ctx, http.MethodGet, "/v1/properties", nil, &list)
	return list, err
}

func (c *Client) GetProperty(ctx context.Context, id string) (Property, error) {
	var p Property
	err := c.do(ctx, http.MethodGet, "/v1/properties/"+id, nil, &p)
	return p, err
}

func (c *Client) UpdateProperty(ctx context.Context, id string, req PropertyRequest) (Property, error) {
	var p Property
	err := c.do(ctx, http.MethodPut, "/v1/properties/"+id, req, &p)
	return p, err
}

func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/properties/"+id, nil, nil)
}

func (c *Client) CreateInvitation(ctx context.Context, propertyID, email string) (Invitation, error) {
	var inv Invitation
	err := c.do(ctx, http.MethodPost, "/v1/properties/"+propertyID+"/invitations", InviteRequest{Email: email}, &inv)
	return inv, err
}

func (c *Client) ListInvitations(ctx context.Context, propertyID string) ([]Invitation, error) {
	var list []Invitation
	err := c.do(ctx, http.MethodGet, "/v1/properties/"+propertyID+"/invitations", nil, &list)
	return list, err
}

func (c *Client) GetInvite(ctx context.Context, token string) (InvitePreview, error) {
	var preview InvitePreview
	err := c.do(ctx, http.MethodGet, "/v1/invites/"+token, nil, &preview)
	return preview, err
}

func (c *Client) AcceptInvite(ctx context.Context, token string, req AcceptInviteRequest) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/v1/invites/"+token+"/accept", req, &user)
	return user, err
}

func (c *Client) RevokeInvitation(ctx context.Context, invitationID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/invitations/"+invitationID, nil, nil)
}

func (c *Client) ListTenants(ctx context.Context, propertyID string) ([]Tenant, error) {
	var list []Tenant
	err := c.do(ctx, http.MethodGet, "/v1/properties/"+propertyID+"/tenants", nil, &list)
	return list, err
}

func (c *Client) AssignTenant(ctx context.Context, propertyID, userID string) error {
	return c.do(ctx, http.MethodPost, "/v1/properties/"+propertyID+"/tenants", AssignTenantRequest{UserID: userID}, nil)
}

func (c *Client) RemoveTenant(ctx context.Context, propertyID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/properties/"+propertyID+"/tenants/"+userID, nil, nil)
}

func (c *Client) AddDocument(ctx context.Context, propertyID string, req DocumentRequest) (Document, error) {
	var doc Document
	err := c.do(ctx, http.MethodPost, "/v1/properties/"+propertyID+"/documents", req, &doc)
	return doc, err
}

func (c *Client) ListDocuments(ctx context.Context, propertyID string) ([]Document, error) {
	var list []Document
	err := c.do(ctx, http.MethodGet, "/v1/properties/"+propertyID+"/documents", nil, &list)
	return list, err
}

func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/documents/"+documentID, nil, nil)
}

func (c *Client) ShareDocument(ctx context.Context, documentID string, userIDs []string) error {
	return c.do(ctx, http.MethodPost, "/v1/documents/"+documentID+"/share", ShareDocumentRequest{UserIDs: userIDs}, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var list []User
	err := c.do(ctx, http.MethodGet, "/v1/admin/users", nil, &list)
	return list, err
}

func (c *Client) ChangeUserRole(ctx context.Context, userID, role string) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPut, "/v1/admin/users/"+userID+"/role", ChangeRoleRequest{Role: role}, &user)
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/admin/users/"+userID, nil, nil)
}

func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &health)
	return health, err
}

func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", nil, &health)
	return health, err
}
