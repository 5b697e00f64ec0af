// Package api defines the request and response types of the keyhold HTTP
// surface, plus a small client wrapping them. Handlers and consumers share
// these types so the wire format lives in exactly one place.
package api

import "time"

// ErrorResponse is the shape of every error payload the service returns.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "invalid_request",
	// "forbidden", "invite_expired").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description"`
}

// RegisterRequest creates a new landlord or tenant account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"` // "landlord" (default) or "tenant"
}

// LoginRequest exchanges credentials for a session token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed session token.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"` // always "Bearer"
	ExpiresIn int    `json:"expires_in"` // seconds
	User      User   `json:"user"`
}

// User is the public view of an account. Password material never appears.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// PropertyRequest carries the editable property fields for create and
// update.
type PropertyRequest struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	County       string `json:"county,omitempty"`
	Postcode     string `json:"postcode"`
	PropertyType string `json:"property_type"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	Description  string `json:"description,omitempty"`
}

// Property is the full property record, visible to its owner, admins, and
// members.
type Property struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	County       string    `json:"county,omitempty"`
	Postcode     string    `json:"postcode"`
	PropertyType string    `json:"property_type"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PropertySummary is the reduced view shown to invitees before they join.
type PropertySummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PropertyType string `json:"property_type"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
}

// InviteRequest mints an invitation for an email address.
type InviteRequest struct {
	Email string `json:"email"`
}

// Invitation is the owner-facing view of an invitation.
type Invitation struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	PropertyID string    `json:"property_id"`
	Status     string    `json:"status"`
	InviteLink string    `json:"invite_link,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// InvitePreview is what an unauthenticated token holder sees before
// accepting.
type InvitePreview struct {
	Email     string          `json:"email"`
	ExpiresAt time.Time       `json:"expires_at"`
	Property  PropertySummary `json:"property"`
}

// AcceptInviteRequest redeems an invitation token into a tenant account.
type AcceptInviteRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Tenant is one row of a property's tenant roster.
type Tenant struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

// AssignTenantRequest adds an existing user to a property's roster.
type AssignTenantRequest struct {
	UserID string `json:"user_id"`
}

// DocumentRequest records document metadata against a property.
type DocumentRequest struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	FileType string `json:"file_type,omitempty"`
	FileSize int64  `json:"file_size"`
}

// Document is stored document metadata.
type Document struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	Name       string    `json:"name"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type,omitempty"`
	FileSize   int64     `json:"file_size"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShareDocumentRequest notifies property members about a document.
type ShareDocumentRequest struct {
	UserIDs []string `json:"user_ids"`
}

// ChangeRoleRequest sets a user's global role. Admin only.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
