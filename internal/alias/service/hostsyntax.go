package service

import "strings"

// HostSyntax is the default structural validator: the normalized host must
// look like a resolvable host or host/path, with no whitespace, no residual
// scheme or UNC separators, and a non-empty leading host label.
type HostSyntax struct{}

func (HostSyntax) IsStructurallyValid(lowercasedHost string) bool {
	host := lowercasedHost
	if host == "" || strings.ContainsAny(host, " \t\r\n") {
		return false
	}
	if strings.Contains(host, "://") || strings.Contains(host, `\\`) {
		return false
	}

	// Everything before the first path separator must be a plausible
	// host[:port] label sequence.
	if i := strings.IndexAny(host, `/\`); i != -1 {
		host = host[:i]
	}
	if host == "" {
		return false
	}
	if strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return false
	}
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == ':' || r == '_':
		default:
			return false
		}
	}
	return true
}
