package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/repository"
)

var _ repository.IndicatorRepository = (*IndicatorRepo)(nil)

// IndicatorRepo implementación del puerto IndicatorRepository sobre PostgreSQL.
type IndicatorRepo struct {
	db Querier
}

// NewIndicatorRepository construye el adaptador de persistencia de indicadores.
func NewIndicatorRepository(db Querier) *IndicatorRepo {
	return &IndicatorRepo{db: db}
}

const indicatorColumns = `
	id, name, type, value, unit, status, zone, warning_threshold, critical_threshold,
	sensor_id, recorded_by, notes, is_active, created_at, updated_at`

// Create persiste una lectura de indicador.
func (r *IndicatorRepo) Create(ctx context.Context, ind *entity.EnvironmentalIndicator) error {
	query := `
		INSERT INTO environmental_indicators (` + indicatorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		ind.ID, ind.Name, ind.Type, ind.Value, ind.Unit, ind.Status, ind.Zone,
		ind.WarningThreshold, ind.CriticalThreshold, ind.SensorID, ind.RecordedBy,
		ind.Notes, ind.IsActive, ind.CreatedAt, ind.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert indicator: %w", err)
	}
	return nil
}

// CurrentSummary última lectura activa de cada tipo de indicador.
func (r *IndicatorRepo) CurrentSummary(ctx context.Context) ([]entity.EnvironmentalIndicator, error) {
	query := `
		SELECT DISTINCT ON (type) ` + indicatorColumns + `
		FROM environmental_indicators
		WHERE is_active
		ORDER BY type, created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("indicator summary: %w", err)
	}
	defer rows.Close()
	return scanIndicators(rows)
}

// ListByZone lecturas activas de la zona, más recientes primero.
func (r *IndicatorRepo) ListByZone(ctx context.Context, zone string) ([]entity.EnvironmentalIndicator, error) {
	query := `
		SELECT ` + indicatorColumns + `
		FROM environmental_indicators
		WHERE is_active AND zone = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, zone)
	if err != nil {
		return nil, fmt.Errorf("list indicators by zone: %w", err)
	}
	defer rows.Close()
	return scanIndicators(rows)
}

func scanIndicators(rows pgx.Rows) ([]entity.EnvironmentalIndicator, error) {
	var list []entity.EnvironmentalIndicator
	for rows.Next() {
		var i entity.EnvironmentalIndicator
		if err := rows.Scan(
			&i.ID, &i.Name, &i.Type, &i.Value, &i.Unit, &i.Status, &i.Zone,
			&i.WarningThreshold, &i.CriticalThreshold, &i.SensorID, &i.RecordedBy,
			&i.Notes, &i.IsActive, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan indicator: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}
