// Package cache invalidates downstream per-tenant settings caches. The admin
// surface never reads through the cache itself; it only signals the serving
// path that a tenant's settings changed.
package cache

import (
	"context"
	"fmt"

	platformredis "siteadmin/internal/platform/redis"
	id "siteadmin/pkg/domain"
)

// Invalidator drops a tenant's cached settings after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, tenantID id.TenantID) error
}

// Redis invalidates by deleting the tenant's settings key.
type Redis struct {
	client *platformredis.Client
}

func NewRedis(client *platformredis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Invalidate(ctx context.Context, tenantID id.TenantID) error {
	return r.client.Del(ctx, key(tenantID)).Err()
}

func key(tenantID id.TenantID) string {
	return fmt.Sprintf("siteadmin:settings:%s", tenantID.String())
}

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) Invalidate(context.Context, id.TenantID) error { return nil }
