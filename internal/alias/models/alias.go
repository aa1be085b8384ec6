package models

import (
	"time"

	id "siteadmin/pkg/domain"
)

// BrowserType is the client-agent category an alias is bound to.
type BrowserType string

const (
	BrowserNormal BrowserType = "Normal"
	BrowserMobile BrowserType = "Mobile"
)

// BrowserTypes lists the valid categories in presentation order.
func BrowserTypes() []BrowserType {
	return []BrowserType{BrowserNormal, BrowserMobile}
}

// ParseBrowserType maps a raw string to a category, defaulting to Normal.
// Unknown values fall back rather than fail; the category is a routing hint,
// not an invariant.
func ParseBrowserType(s string) BrowserType {
	if BrowserType(s) == BrowserMobile {
		return BrowserMobile
	}
	return BrowserNormal
}

// Alias is a host-name binding that routes inbound requests to a tenant.
//
// Invariants:
//   - Host is non-empty and structurally valid (see NormalizeHost)
//   - Host is globally unique across ALL tenants, compared case-insensitively
//   - At most one alias per tenant has IsPrimary set; SetPrimary demotes the
//     rest of the tenant's aliases in the same store operation
//   - A primary alias cannot be deleted
type Alias struct {
	ID          id.AliasID  `json:"id"`
	TenantID    id.TenantID `json:"tenant_id"`
	Host        string      `json:"host"`
	BrowserType BrowserType `json:"browser_type"`
	Skin        string      `json:"skin"`
	CultureCode string      `json:"culture_code"`
	IsPrimary   bool        `json:"is_primary"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// HostKey returns the comparable form of the alias host used for the global
// uniqueness check.
func (a *Alias) HostKey() string { return HostKey(a.Host) }

// View is an alias augmented with presentation hints for the admin UI.
// Deletable and Editable are derived per request; they are hints, not
// enforced invariants (deletion of a primary alias is rejected regardless).
type View struct {
	Alias
	Deletable bool `json:"deletable"`
	Editable  bool `json:"editable"`
}
