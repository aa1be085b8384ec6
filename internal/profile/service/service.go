// Package service implements the profile field registry: per-tenant name
// uniqueness, structural validation by data type, and protected-name
// deletion rules.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"siteadmin/internal/platform/metrics"
	"siteadmin/internal/profile/models"
	id "siteadmin/pkg/domain"
	dErrors "siteadmin/pkg/domain-errors"
	"siteadmin/pkg/platform/sentinel"
	"siteadmin/pkg/requestcontext"
)

// Store is the durable field-definition mapping. Implementations must report
// a per-tenant name uniqueness violation as sentinel.ErrConflict, distinct
// from other failures.
type Store interface {
	Insert(ctx context.Context, field *models.FieldDefinition) error
	Update(ctx context.Context, field *models.FieldDefinition) error
	FindByID(ctx context.Context, tenantID id.TenantID, fieldID id.FieldID) (*models.FieldDefinition, error)
	FindByNameKey(ctx context.Context, tenantID id.TenantID, nameKey string) (*models.FieldDefinition, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.FieldDefinition, error)
	Delete(ctx context.Context, tenantID id.TenantID, fieldID id.FieldID) error
}

// DataTypeResolver maps a field's data-type code to its type name. An empty
// name means the code is unknown and carries no structural rule.
type DataTypeResolver interface {
	ResolveTypeName(code int) string
}

// Draft carries the caller-supplied attributes of an add or update command.
type Draft struct {
	Name                 string
	DataType             int
	Category             string
	Length               int
	DefaultValue         string
	ValidationExpression string
	Required             bool
	ReadOnly             bool
	Visible              bool
	ViewOrder            int
	DefaultVisibility    models.Visibility
}

// ruleFunc is a structural validation rule keyed by data-type name. A rule
// returns a rejection or nil.
type ruleFunc func(d Draft) error

// rules holds the per-type validation table. Only "Text" has a rule today;
// new data types slot in without touching registry logic.
var rules = map[string]ruleFunc{
	"Text": func(d Draft) error {
		if d.Required && d.Length == 0 {
			return dErrors.New(dErrors.CodeRequiredField, "required text field must have a length")
		}
		return nil
	},
}

// DefaultProtectedNames are the field names no actor may delete.
func DefaultProtectedNames() []string {
	return []string{"LastName", "FirstName", "PreferredTimeZone", "PreferredLocale"}
}

// Registry enforces the field-definition invariants. It holds no locks and
// no state between commands; name uniqueness under concurrency is delegated
// to the store.
type Registry struct {
	fields    Store
	types     DataTypeResolver
	protected map[string]struct{}
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(r *Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithProtectedNames replaces the default protected-name set. Matching is
// case-insensitive.
func WithProtectedNames(names []string) Option {
	return func(r *Registry) {
		r.protected = make(map[string]struct{}, len(names))
		for _, n := range names {
			r.protected[strings.ToLower(n)] = struct{}{}
		}
	}
}

// New constructs the field registry with the default protected names.
func New(fields Store, types DataTypeResolver, opts ...Option) *Registry {
	r := &Registry{
		fields: fields,
		types:  types,
		logger: slog.Default(),
	}
	WithProtectedNames(DefaultProtectedNames())(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns the tenant's field definitions in view order, each with the
// derived deletion hint computed from the protected-name set.
func (r *Registry) List(ctx context.Context, tenantID id.TenantID) ([]models.View, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	fields, err := r.fields.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, r.internal(ctx, err, "failed to list profile fields")
	}

	views := make([]models.View, 0, len(fields))
	for _, f := range fields {
		views = append(views, models.View{
			FieldDefinition: *f,
			CanDelete:       !r.isProtected(f.Name),
		})
	}
	return views, nil
}

// Get returns a single field definition scoped to its tenant.
func (r *Registry) Get(ctx context.Context, tenantID id.TenantID, fieldID id.FieldID) (*models.FieldDefinition, error) {
	field, err := r.fields.FindByID(ctx, tenantID, fieldID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "profile field not found")
		}
		return nil, r.internal(ctx, err, "failed to load profile field")
	}
	return field, nil
}

// Add validates and persists a new field definition. The actor's capability
// is an explicit input so the validation outcome is a pure function of
// (draft, capability): a privileged actor has Required forced to false so it
// can never be locked out by a mandatory field it cannot be exempted from.
// The override applies only at creation.
func (r *Registry) Add(ctx context.Context, tenantID id.TenantID, draft Draft, actorIsPrivileged bool) (*models.FieldDefinition, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	if actorIsPrivileged {
		draft.Required = false
	}
	if err := r.validate(draft); err != nil {
		return nil, err
	}

	// Advisory pre-check; the store's unique index has the final word.
	nameKey := strings.ToLower(draft.Name)
	if _, err := r.fields.FindByNameKey(ctx, tenantID, nameKey); err == nil {
		return nil, dErrors.New(dErrors.CodeDuplicateName, "profile field name already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, r.internal(ctx, err, "failed to check field name uniqueness")
	}

	now := requestcontext.Now(ctx)
	field := &models.FieldDefinition{
		ID:                   id.NewFieldID(),
		TenantID:             tenantID,
		Name:                 draft.Name,
		DataType:             draft.DataType,
		Category:             draft.Category,
		Length:               draft.Length,
		DefaultValue:         draft.DefaultValue,
		ValidationExpression: draft.ValidationExpression,
		Required:             draft.Required,
		ReadOnly:             draft.ReadOnly,
		Visible:              draft.Visible,
		ViewOrder:            draft.ViewOrder,
		DefaultVisibility:    draft.DefaultVisibility,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := r.fields.Insert(ctx, field); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeDuplicateName, "profile field name already exists")
		}
		return nil, r.internal(ctx, err, "failed to create profile field")
	}

	if r.metrics != nil {
		r.metrics.IncrementFieldsCreated()
	}
	return field, nil
}

// Update revalidates and persists an existing field definition. The name
// uniqueness check excludes the record being updated. The privilege-based
// Required override does not apply here.
func (r *Registry) Update(ctx context.Context, tenantID id.TenantID, fieldID id.FieldID, draft Draft) (*models.FieldDefinition, error) {
	field, err := r.Get(ctx, tenantID, fieldID)
	if err != nil {
		return nil, err
	}
	if err := r.validate(draft); err != nil {
		return nil, err
	}

	nameKey := strings.ToLower(draft.Name)
	if existing, err := r.fields.FindByNameKey(ctx, tenantID, nameKey); err == nil {
		if existing.ID != fieldID {
			return nil, dErrors.New(dErrors.CodeDuplicateName, "profile field name already exists")
		}
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, r.internal(ctx, err, "failed to check field name uniqueness")
	}

	field.Name = draft.Name
	field.DataType = draft.DataType
	field.Category = draft.Category
	field.Length = draft.Length
	field.DefaultValue = draft.DefaultValue
	field.ValidationExpression = draft.ValidationExpression
	field.Required = draft.Required
	field.ReadOnly = draft.ReadOnly
	field.Visible = draft.Visible
	field.ViewOrder = draft.ViewOrder
	field.DefaultVisibility = draft.DefaultVisibility
	field.UpdatedAt = requestcontext.Now(ctx)

	if err := r.fields.Update(ctx, field); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeDuplicateName, "profile field name already exists")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "profile field not found")
		}
		return nil, r.internal(ctx, err, "failed to update profile field")
	}
	return field, nil
}

// Delete removes a field definition unless its name is protected. Protection
// is case-insensitive and applies to every actor, privileged or not.
func (r *Registry) Delete(ctx context.Context, tenantID id.TenantID, fieldID id.FieldID) error {
	field, err := r.Get(ctx, tenantID, fieldID)
	if err != nil {
		return err
	}
	if r.isProtected(field.Name) {
		return dErrors.New(dErrors.CodeForbiddenDelete, "protected profile field cannot be deleted")
	}

	if err := r.fields.Delete(ctx, tenantID, fieldID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "profile field not found")
		}
		return r.internal(ctx, err, "failed to delete profile field")
	}
	if r.metrics != nil {
		r.metrics.IncrementFieldsDeleted()
	}
	return nil
}

func (r *Registry) validate(draft Draft) error {
	if strings.TrimSpace(draft.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "field name is required")
	}
	if !draft.DefaultVisibility.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid default visibility")
	}
	if rule, ok := rules[r.types.ResolveTypeName(draft.DataType)]; ok {
		if err := rule(draft); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) isProtected(name string) bool {
	_, ok := r.protected[strings.ToLower(name)]
	return ok
}

func (r *Registry) internal(ctx context.Context, err error, msg string) error {
	r.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
