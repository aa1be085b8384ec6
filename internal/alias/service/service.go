// Package service implements the alias registry: validity, global host
// uniqueness, the single-primary invariant, and safe deletion with
// best-effort folder cleanup.
package service

import (
	"context"
	"errors"
	"log/slog"

	"siteadmin/internal/alias/models"
	"siteadmin/internal/platform/metrics"
	id "siteadmin/pkg/domain"
	dErrors "siteadmin/pkg/domain-errors"
	"siteadmin/pkg/platform/sentinel"
	"siteadmin/pkg/requestcontext"
)

// Store is the durable alias mapping. Implementations must report a host
// uniqueness violation as sentinel.ErrConflict, distinct from other failures:
// the registry's own pre-check is advisory, the store's constraint is
// authoritative under concurrency.
type Store interface {
	Insert(ctx context.Context, alias *models.Alias) error
	Update(ctx context.Context, alias *models.Alias) error
	FindByID(ctx context.Context, aliasID id.AliasID) (*models.Alias, error)
	FindByHostKey(ctx context.Context, hostKey string) (*models.Alias, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.Alias, error)
	// SetPrimary promotes the alias and demotes every other alias of the same
	// tenant in one atomic operation.
	SetPrimary(ctx context.Context, aliasID id.AliasID) (*models.Alias, error)
	Delete(ctx context.Context, aliasID id.AliasID) error
}

// HostValidator applies the structural alias-validity rule. It receives the
// lower-cased normalized host.
type HostValidator interface {
	IsStructurallyValid(lowercasedHost string) bool
}

// FolderCleaner removes the filesystem folder derived from a deleted alias.
// Cleanup is best-effort and non-transactional with the registry write.
type FolderCleaner interface {
	DeleteDerivedFolder(ctx context.Context, host string) error
}

// AddParams carries the inputs of an add command.
type AddParams struct {
	TenantID    id.TenantID
	Host        string
	BrowserType models.BrowserType
	Skin        string
	CultureCode string
	IsPrimary   bool
}

// UpdateParams carries the inputs of an update command. The tenant is fixed
// at creation and not part of the update surface. An empty BrowserType
// keeps the stored value.
type UpdateParams struct {
	Host        string
	BrowserType models.BrowserType
	Skin        string
	CultureCode string
	IsPrimary   bool
}

// Registry enforces the alias invariants. It holds no locks and no state
// between commands; uniqueness under concurrency is delegated to the store.
type Registry struct {
	aliases Store
	hosts   HostValidator
	folders FolderCleaner
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(r *Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithFolderCleaner sets the collaborator handling post-delete folder cleanup.
func WithFolderCleaner(fc FolderCleaner) Option {
	return func(r *Registry) { r.folders = fc }
}

// New constructs the alias registry.
func New(aliases Store, hosts HostValidator, opts ...Option) *Registry {
	r := &Registry{
		aliases: aliases,
		hosts:   hosts,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns the tenant's aliases in store order, each with presentation
// hints. The alias the current request arrived on is neither deletable nor
// editable from that same request; a primary alias is additionally not
// deletable.
func (r *Registry) List(ctx context.Context, tenantID id.TenantID) ([]models.View, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	aliases, err := r.aliases.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, r.internal(ctx, err, "failed to list aliases")
	}

	current := requestcontext.RequestAliasID(ctx)
	views := make([]models.View, 0, len(aliases))
	for _, a := range aliases {
		views = append(views, models.View{
			Alias:     *a,
			Deletable: a.ID != current && !a.IsPrimary,
			Editable:  a.ID != current,
		})
	}
	return views, nil
}

// Get returns a single alias by ID.
func (r *Registry) Get(ctx context.Context, aliasID id.AliasID) (*models.Alias, error) {
	alias, err := r.aliases.FindByID(ctx, aliasID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "alias not found")
		}
		return nil, r.internal(ctx, err, "failed to load alias")
	}
	return alias, nil
}

// Add validates and persists a new alias. The host is normalized, checked
// against the global alias set (all tenants), and inserted; a store-level
// conflict surfaces as the same DuplicateAlias rejection as the pre-check.
func (r *Registry) Add(ctx context.Context, params AddParams) (*models.Alias, error) {
	if params.TenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	host, err := r.normalizeAndValidate(params.Host)
	if err != nil {
		return nil, err
	}

	// Advisory pre-check; the store's unique index has the final word.
	if _, err := r.aliases.FindByHostKey(ctx, models.HostKey(host)); err == nil {
		return nil, dErrors.New(dErrors.CodeDuplicateAlias, "alias already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, r.internal(ctx, err, "failed to check alias uniqueness")
	}

	now := requestcontext.Now(ctx)
	alias := &models.Alias{
		ID:          id.NewAliasID(),
		TenantID:    params.TenantID,
		Host:        host,
		BrowserType: params.BrowserType,
		Skin:        params.Skin,
		CultureCode: params.CultureCode,
		IsPrimary:   params.IsPrimary,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.aliases.Insert(ctx, alias); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeDuplicateAlias, "alias already exists")
		}
		return nil, r.internal(ctx, err, "failed to create alias")
	}

	if r.metrics != nil {
		r.metrics.IncrementAliasesCreated()
	}
	return alias, nil
}

// Update revalidates and persists an existing alias. The global uniqueness
// check excludes the record being updated, so saving an alias without
// changing its host is not a self-collision.
func (r *Registry) Update(ctx context.Context, aliasID id.AliasID, params UpdateParams) (*models.Alias, error) {
	alias, err := r.Get(ctx, aliasID)
	if err != nil {
		return nil, err
	}
	host, err := r.normalizeAndValidate(params.Host)
	if err != nil {
		return nil, err
	}

	if existing, err := r.aliases.FindByHostKey(ctx, models.HostKey(host)); err == nil {
		if existing.ID != aliasID {
			return nil, dErrors.New(dErrors.CodeDuplicateAlias, "alias already exists")
		}
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, r.internal(ctx, err, "failed to check alias uniqueness")
	}

	alias.Host = host
	if params.BrowserType != "" {
		alias.BrowserType = params.BrowserType
	}
	alias.Skin = params.Skin
	alias.CultureCode = params.CultureCode
	alias.IsPrimary = params.IsPrimary
	alias.UpdatedAt = requestcontext.Now(ctx)

	if err := r.aliases.Update(ctx, alias); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeDuplicateAlias, "alias already exists")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "alias not found")
		}
		return nil, r.internal(ctx, err, "failed to update alias")
	}
	return alias, nil
}

// SetPrimary promotes the alias to its tenant's primary. The store demotes
// every other alias of the tenant in the same operation, keeping the
// single-primary invariant under concurrent edits.
func (r *Registry) SetPrimary(ctx context.Context, aliasID id.AliasID) (*models.Alias, error) {
	alias, err := r.aliases.SetPrimary(ctx, aliasID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "alias not found")
		}
		return nil, r.internal(ctx, err, "failed to set primary alias")
	}
	return alias, nil
}

// Delete removes a non-primary alias, then asks the folder cleaner to remove
// the alias's derived folder. Cleanup failure is logged and does not roll
// back the deletion.
func (r *Registry) Delete(ctx context.Context, aliasID id.AliasID) error {
	alias, err := r.Get(ctx, aliasID)
	if err != nil {
		return err
	}
	if alias.IsPrimary {
		return dErrors.New(dErrors.CodeForbiddenDelete, "primary alias cannot be deleted")
	}

	if err := r.aliases.Delete(ctx, aliasID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "alias not found")
		}
		return r.internal(ctx, err, "failed to delete alias")
	}
	if r.metrics != nil {
		r.metrics.IncrementAliasesDeleted()
	}

	if r.folders != nil {
		if err := r.folders.DeleteDerivedFolder(ctx, alias.Host); err != nil {
			r.logger.WarnContext(ctx, "alias folder cleanup failed",
				"alias_id", alias.ID.String(),
				"host", alias.Host,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	return nil
}

func (r *Registry) normalizeAndValidate(raw string) (string, error) {
	host, err := models.NormalizeHost(raw)
	if err != nil {
		return "", err
	}
	if !r.hosts.IsStructurallyValid(models.HostKey(host)) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid alias")
	}
	return host, nil
}

func (r *Registry) internal(ctx context.Context, err error, msg string) error {
	r.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
