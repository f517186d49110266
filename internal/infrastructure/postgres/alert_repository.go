package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ecogestion/raee-api/internal/domain"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
// Metadata se persiste como JSONB (pgx la codifica/decodifica directamente).
type AlertRepo struct {
	db Querier
}

// NewAlertRepository construye el adaptador de persistencia de alertas.
// Acepta el pool o una pgx.Tx; la compuerta de deduplicación lo usa con tx.
func NewAlertRepository(db Querier) *AlertRepo {
	return &AlertRepo{db: db}
}

const alertColumns = `
	id, type, priority, title, message, zone, is_active, is_read,
	resolved_at, resolved_by, resolution_notes, created_by, metadata, created_at, updated_at`

// Create persiste la alerta. La violación del índice único parcial de
// capacidad activa por zona se traduce a domain.ErrConflict.
func (r *AlertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	query := `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		alert.ID, alert.Type, alert.Priority, alert.Title, alert.Message, alert.Zone,
		alert.IsActive, alert.IsRead, alert.ResolvedAt, alert.ResolvedBy, alert.ResolutionNotes,
		alert.CreatedBy, alert.Metadata, alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	var a entity.Alert
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Type, &a.Priority, &a.Title, &a.Message, &a.Zone, &a.IsActive, &a.IsRead,
		&a.ResolvedAt, &a.ResolvedBy, &a.ResolutionNotes, &a.CreatedBy, &a.Metadata,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get alert by id: %w", err)
	}
	return &a, nil
}

// Update persiste los campos mutables de la alerta.
func (r *AlertRepo) Update(ctx context.Context, alert *entity.Alert) error {
	query := `
		UPDATE alerts
		SET is_active = $2, is_read = $3, resolved_at = $4, resolved_by = $5,
			resolution_notes = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		alert.ID, alert.IsActive, alert.IsRead, alert.ResolvedAt, alert.ResolvedBy,
		alert.ResolutionNotes, alert.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive alertas activas por prioridad y recencia. limit <= 0 = sin límite.
func (r *AlertRepo) ListActive(ctx context.Context, limit int) ([]entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE is_active
		ORDER BY array_position(ARRAY['critical','high','medium','low'], priority), created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// ListActiveByZone alertas activas de una zona.
func (r *AlertRepo) ListActiveByZone(ctx context.Context, zone string) ([]entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE is_active AND zone = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, zone)
	if err != nil {
		return nil, fmt.Errorf("list active alerts by zone: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// ListCritical alertas activas de prioridad high o critical.
func (r *AlertRepo) ListCritical(ctx context.Context) ([]entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE is_active AND priority IN ('high', 'critical')
		ORDER BY array_position(ARRAY['critical','high'], priority), created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list critical alerts: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// FindActiveCapacityByZone alerta de capacidad activa de la zona, nil si no hay.
func (r *AlertRepo) FindActiveCapacityByZone(ctx context.Context, zone string) (*entity.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE is_active AND type = 'capacity' AND zone = $1
		LIMIT 1`
	var a entity.Alert
	err := r.db.QueryRow(ctx, query, zone).Scan(
		&a.ID, &a.Type, &a.Priority, &a.Title, &a.Message, &a.Zone, &a.IsActive, &a.IsRead,
		&a.ResolvedAt, &a.ResolvedBy, &a.ResolutionNotes, &a.CreatedBy, &a.Metadata,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active capacity alert: %w", err)
	}
	return &a, nil
}

func scanAlerts(rows pgx.Rows) ([]entity.Alert, error) {
	var list []entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(
			&a.ID, &a.Type, &a.Priority, &a.Title, &a.Message, &a.Zone, &a.IsActive, &a.IsRead,
			&a.ResolvedAt, &a.ResolvedBy, &a.ResolutionNotes, &a.CreatedBy, &a.Metadata,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
