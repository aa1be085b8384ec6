package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"siteadmin/internal/profile/models"
	id "siteadmin/pkg/domain"
	"siteadmin/pkg/platform/sentinel"
)

// Postgres persists field definitions with a unique index on
// (tenant_id, LOWER(name)); the index is the authoritative uniqueness check,
// surfaced as sentinel.ErrConflict.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const fieldColumns = `id, tenant_id, name, data_type, category, length,
	default_value, validation_expression, required, read_only, visible,
	view_order, default_visibility, created_at, updated_at`

func (s *Postgres) Insert(ctx context.Context, field *models.FieldDefinition) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile_fields (`+fieldColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		uuid.UUID(field.ID), uuid.UUID(field.TenantID), field.Name,
		field.DataType, field.Category, field.Length, field.DefaultValue,
		field.ValidationExpression, field.Required, field.ReadOnly,
		field.Visible, field.ViewOrder, int(field.DefaultVisibility),
		field.CreatedAt, field.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("field %q: %w", field.Name, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert profile field: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, field *models.FieldDefinition) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profile_fields
		 SET name = $3, data_type = $4, category = $5, length = $6,
		     default_value = $7, validation_expression = $8, required = $9,
		     read_only = $10, visible = $11, view_order = $12,
		     default_visibility = $13, updated_at = $14
		 WHERE id = $1 AND tenant_id = $2`,
		uuid.UUID(field.ID), uuid.UUID(field.TenantID), field.Name,
		field.DataType, field.Category, field.Length, field.DefaultValue,
		field.ValidationExpression, field.Required, field.ReadOnly,
		field.Visible, field.ViewOrder, int(field.DefaultVisibility),
		field.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("field %q: %w", field.Name, sentinel.ErrConflict)
		}
		return fmt.Errorf("update profile field: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile field: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, tenantID id.TenantID, fieldID id.FieldID) (*models.FieldDefinition, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+fieldColumns+` FROM profile_fields WHERE id = $1 AND tenant_id = $2`,
		uuid.UUID(fieldID), uuid.UUID(tenantID),
	)
	return scanField(row)
}

func (s *Postgres) FindByNameKey(ctx context.Context, tenantID id.TenantID, nameKey string) (*models.FieldDefinition, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+fieldColumns+` FROM profile_fields WHERE tenant_id = $1 AND LOWER(name) = $2`,
		uuid.UUID(tenantID), nameKey,
	)
	return scanField(row)
}

func (s *Postgres) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.FieldDefinition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+fieldColumns+` FROM profile_fields
		 WHERE tenant_id = $1 ORDER BY view_order, created_at, id`,
		uuid.UUID(tenantID),
	)
	if err != nil {
		return nil, fmt.Errorf("list profile fields: %w", err)
	}
	defer rows.Close()

	fields := make([]*models.FieldDefinition, 0)
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profile fields: %w", err)
	}
	return fields, nil
}

func (s *Postgres) Delete(ctx context.Context, tenantID id.TenantID, fieldID id.FieldID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM profile_fields WHERE id = $1 AND tenant_id = $2`,
		uuid.UUID(fieldID), uuid.UUID(tenantID),
	)
	if err != nil {
		return fmt.Errorf("delete profile field: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile field: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanField(row rowScanner) (*models.FieldDefinition, error) {
	var (
		field      models.FieldDefinition
		fieldID    uuid.UUID
		tenantID   uuid.UUID
		visibility int
	)
	err := row.Scan(&fieldID, &tenantID, &field.Name, &field.DataType,
		&field.Category, &field.Length, &field.DefaultValue,
		&field.ValidationExpression, &field.Required, &field.ReadOnly,
		&field.Visible, &field.ViewOrder, &visibility,
		&field.CreatedAt, &field.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan profile field: %w", err)
	}
	field.ID = id.FieldID(fieldID)
	field.TenantID = id.TenantID(tenantID)
	field.DefaultVisibility = models.Visibility(visibility)
	return &field, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
