// Package models defines profile field schema definitions and their
// invariants.
package models

import (
	"strings"
	"time"

	id "siteadmin/pkg/domain"
)

// Visibility is the default audience for a profile field's value.
type Visibility int

const (
	VisibilityPublic           Visibility = 0
	VisibilityMembersOnly      Visibility = 1
	VisibilityAdminOnly        Visibility = 2
	VisibilityFriendsAndGroups Visibility = 3
)

// Valid reports whether v is one of the defined visibility levels.
func (v Visibility) Valid() bool {
	return v >= VisibilityPublic && v <= VisibilityFriendsAndGroups
}

// FieldDefinition describes one entry in a tenant's user-profile schema.
//
// Invariant: Name is unique per tenant, compared case-insensitively.
type FieldDefinition struct {
	ID                   id.FieldID    `json:"id"`
	TenantID             id.TenantID   `json:"tenant_id"`
	Name                 string        `json:"name"`
	DataType             int           `json:"data_type"`
	Category             string        `json:"category"`
	Length               int           `json:"length"`
	DefaultValue         string        `json:"default_value"`
	ValidationExpression string        `json:"validation_expression"`
	Required             bool          `json:"required"`
	ReadOnly             bool          `json:"read_only"`
	Visible              bool          `json:"visible"`
	ViewOrder            int           `json:"view_order"`
	DefaultVisibility    Visibility    `json:"default_visibility"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// NameKey returns the case-folded form used for per-tenant uniqueness checks.
func (f *FieldDefinition) NameKey() string {
	return strings.ToLower(f.Name)
}

// View is a field definition enriched with the derived deletion hint.
type View struct {
	FieldDefinition
	CanDelete bool `json:"can_delete"`
}
