package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "siteadmin/pkg/domain"
)

// Postgres persists settings in a (tenant_id, setting_name, setting_value)
// table keyed by tenant and name.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) GetAll(ctx context.Context, tenantID id.TenantID) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT setting_name, setting_value FROM tenant_settings WHERE tenant_id = $1`,
		uuid.UUID(tenantID),
	)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	bag := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		bag[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return bag, nil
}

// Save upserts the batch inside one transaction so a partially applied
// section never becomes visible.
func (s *Postgres) Save(ctx context.Context, tenantID id.TenantID, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for name, value := range values {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tenant_settings (tenant_id, setting_name, setting_value, updated_at)
			 VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (tenant_id, setting_name)
			 DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = NOW()`,
			uuid.UUID(tenantID), name, value,
		)
		if err != nil {
			return fmt.Errorf("save setting %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
