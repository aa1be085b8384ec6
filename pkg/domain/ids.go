// Package domain provides typed identifiers for the administrative surface.
//
// IDs are distinct UUID types so a TenantID can never be passed where an
// AliasID is expected; the compiler enforces the boundary.
package domain

import (
	"github.com/google/uuid"

	dErrors "siteadmin/pkg/domain-errors"
)

// TenantID identifies an administratively isolated site. Tenants are not
// created or destroyed here; the ID is supplied externally.
type TenantID uuid.UUID

// AliasID identifies a host-name binding routing requests to a tenant.
type AliasID uuid.UUID

// FieldID identifies a profile field definition.
type FieldID uuid.UUID

func (id TenantID) String() string { return uuid.UUID(id).String() }
func (id AliasID) String() string  { return uuid.UUID(id).String() }
func (id FieldID) String() string  { return uuid.UUID(id).String() }

// IsZero reports whether the ID is the nil UUID.
func (id TenantID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id AliasID) IsZero() bool  { return uuid.UUID(id) == uuid.Nil }
func (id FieldID) IsZero() bool  { return uuid.UUID(id) == uuid.Nil }

// NewAliasID returns a fresh random alias ID.
func NewAliasID() AliasID { return AliasID(uuid.New()) }

// NewFieldID returns a fresh random field ID.
func NewFieldID() FieldID { return FieldID(uuid.New()) }

// ParseTenantID parses a tenant ID, rejecting empty, malformed, and nil values.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant id")
	return TenantID(u), err
}

// ParseAliasID parses an alias ID, rejecting empty, malformed, and nil values.
func ParseAliasID(s string) (AliasID, error) {
	u, err := parseUUID(s, "alias id")
	return AliasID(u), err
}

// ParseFieldID parses a field ID, rejecting empty, malformed, and nil values.
func ParseFieldID(s string) (FieldID, error) {
	u, err := parseUUID(s, "field id")
	return FieldID(u), err
}

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" must not be the nil UUID")
	}
	return u, nil
}
