package models

import (
	"strings"

	dErrors "siteadmin/pkg/domain-errors"
)

// NormalizeHost turns a raw, user-supplied host string into its canonical
// form: leading/trailing whitespace trimmed, any scheme prefix ("...://") and
// any UNC prefix ("\\") stripped. Case is preserved in the stored value; the
// uniqueness comparison uses HostKey.
//
// Normalization is idempotent: applying it to an already-normalized host
// returns the same value.
func NormalizeHost(raw string) (string, error) {
	host := strings.TrimSpace(raw)
	if host == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "alias host is required")
	}

	if i := strings.Index(host, "://"); i != -1 {
		host = host[i+len("://"):]
	}
	if i := strings.Index(host, `\\`); i != -1 {
		host = host[i+len(`\\`):]
	}

	if host == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid alias")
	}
	return host, nil
}

// HostKey returns the lower-cased comparable form of a normalized host.
// Downstream checks only ever compare lower-cased values.
func HostKey(host string) string {
	return strings.ToLower(host)
}
