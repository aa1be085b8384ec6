package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"siteadmin/internal/alias/models"
	id "siteadmin/pkg/domain"
	"siteadmin/pkg/platform/sentinel"
)

// Postgres persists aliases with a unique index on LOWER(host); the index is
// the authoritative uniqueness check, surfaced as sentinel.ErrConflict.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const aliasColumns = `id, tenant_id, host, browser_type, skin, culture_code, is_primary, created_at, updated_at`

func (s *Postgres) Insert(ctx context.Context, alias *models.Alias) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO aliases (`+aliasColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.UUID(alias.ID), uuid.UUID(alias.TenantID), alias.Host,
		string(alias.BrowserType), alias.Skin, alias.CultureCode,
		alias.IsPrimary, alias.CreatedAt, alias.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("host %q: %w", alias.Host, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert alias: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, alias *models.Alias) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE aliases
		 SET host = $2, browser_type = $3, skin = $4, culture_code = $5,
		     is_primary = $6, updated_at = $7
		 WHERE id = $1`,
		uuid.UUID(alias.ID), alias.Host, string(alias.BrowserType),
		alias.Skin, alias.CultureCode, alias.IsPrimary, alias.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("host %q: %w", alias.Host, sentinel.ErrConflict)
		}
		return fmt.Errorf("update alias: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update alias: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, aliasID id.AliasID) (*models.Alias, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+aliasColumns+` FROM aliases WHERE id = $1`,
		uuid.UUID(aliasID),
	)
	return scanAlias(row)
}

func (s *Postgres) FindByHostKey(ctx context.Context, hostKey string) (*models.Alias, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+aliasColumns+` FROM aliases WHERE LOWER(host) = $1`,
		hostKey,
	)
	return scanAlias(row)
}

func (s *Postgres) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.Alias, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+aliasColumns+` FROM aliases WHERE tenant_id = $1 ORDER BY created_at, id`,
		uuid.UUID(tenantID),
	)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	defer rows.Close()

	aliases := make([]*models.Alias, 0)
	for rows.Next() {
		alias, err := scanAlias(rows)
		if err != nil {
			return nil, err
		}
		aliases = append(aliases, alias)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	return aliases, nil
}

// SetPrimary flips the primary flag for the whole tenant in one statement,
// so no interleaving can leave two primaries.
func (s *Postgres) SetPrimary(ctx context.Context, aliasID id.AliasID) (*models.Alias, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE aliases
		 SET is_primary = (id = $1)
		 WHERE tenant_id = (SELECT tenant_id FROM aliases WHERE id = $1)`,
		uuid.UUID(aliasID),
	)
	if err != nil {
		return nil, fmt.Errorf("set primary alias: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("set primary alias: %w", err)
	}
	if rows == 0 {
		return nil, sentinel.ErrNotFound
	}
	return s.FindByID(ctx, aliasID)
}

func (s *Postgres) Delete(ctx context.Context, aliasID id.AliasID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM aliases WHERE id = $1`, uuid.UUID(aliasID))
	if err != nil {
		return fmt.Errorf("delete alias: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete alias: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Count returns the size of the global alias set across all tenants.
func (s *Postgres) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM aliases`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count aliases: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlias(row rowScanner) (*models.Alias, error) {
	var (
		alias       models.Alias
		aliasID     uuid.UUID
		tenantID    uuid.UUID
		browserType string
	)
	err := row.Scan(&aliasID, &tenantID, &alias.Host, &browserType,
		&alias.Skin, &alias.CultureCode, &alias.IsPrimary,
		&alias.CreatedAt, &alias.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan alias: %w", err)
	}
	alias.ID = id.AliasID(aliasID)
	alias.TenantID = id.TenantID(tenantID)
	alias.BrowserType = models.BrowserType(browserType)
	return &alias, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
