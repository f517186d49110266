package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/ecogestion/raee-api/internal/domain"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/repository"
)

var _ repository.WasteEntryRepository = (*WasteEntryRepo)(nil)

// WasteEntryRepo implementación del puerto WasteEntryRepository sobre PostgreSQL.
type WasteEntryRepo struct {
	db Querier
}

// NewWasteEntryRepository construye el adaptador de persistencia de entradas.
func NewWasteEntryRepository(db Querier) *WasteEntryRepo {
	return &WasteEntryRepo{db: db}
}

const entryColumns = `
	e.id, e.transporter_plate, e.transporter_company, e.gross_weight, e.tare_weight,
	e.waste_type, e.zone, e.status, e.receipt_photo, e.notes, e.rejected_reason,
	e.operator_id, COALESCE(u.full_name, ''), e.processed_at, e.created_at, e.updated_at`

// Create persiste una nueva entrada de residuos.
func (r *WasteEntryRepo) Create(ctx context.Context, entry *entity.WasteEntry) error {
	query := `
		INSERT INTO waste_entries (
			id, transporter_plate, transporter_company, gross_weight, tare_weight,
			waste_type, zone, status, receipt_photo, notes, rejected_reason,
			operator_id, processed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.TransporterPlate, entry.TransporterCompany,
		entry.GrossWeight, entry.TareWeight, entry.WasteType, entry.Zone, entry.Status,
		entry.ReceiptPhoto, entry.Notes, entry.RejectedReason,
		entry.OperatorID, entry.ProcessedAt, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert waste entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID con el nombre del operador resuelto.
func (r *WasteEntryRepo) GetByID(ctx context.Context, id string) (*entity.WasteEntry, error) {
	query := `
		SELECT` + entryColumns + `
		FROM waste_entries e
		LEFT JOIN users u ON u.id = e.operator_id
		WHERE e.id = $1`
	var e entity.WasteEntry
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.TransporterPlate, &e.TransporterCompany, &e.GrossWeight, &e.TareWeight,
		&e.WasteType, &e.Zone, &e.Status, &e.ReceiptPhoto, &e.Notes, &e.RejectedReason,
		&e.OperatorID, &e.OperatorName, &e.ProcessedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get waste entry by id: %w", err)
	}
	return &e, nil
}

// Update persiste los campos mutables de la entrada.
func (r *WasteEntryRepo) Update(ctx context.Context, entry *entity.WasteEntry) error {
	query := `
		UPDATE waste_entries
		SET status = $2, notes = $3, rejected_reason = $4, processed_at = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		entry.ID, entry.Status, entry.Notes, entry.RejectedReason, entry.ProcessedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update waste entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Latest devuelve la entrada más reciente, nil si no hay ninguna.
func (r *WasteEntryRepo) Latest(ctx context.Context) (*entity.WasteEntry, error) {
	query := `
		SELECT` + entryColumns + `
		FROM waste_entries e
		LEFT JOIN users u ON u.id = e.operator_id
		ORDER BY e.created_at DESC
		LIMIT 1`
	var e entity.WasteEntry
	err := r.db.QueryRow(ctx, query).Scan(
		&e.ID, &e.TransporterPlate, &e.TransporterCompany, &e.GrossWeight, &e.TareWeight,
		&e.WasteType, &e.Zone, &e.Status, &e.ReceiptPhoto, &e.Notes, &e.RejectedReason,
		&e.OperatorID, &e.OperatorName, &e.ProcessedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest waste entry: %w", err)
	}
	return &e, nil
}

// ListRecent entradas más recientes primero.
func (r *WasteEntryRepo) ListRecent(ctx context.Context, limit int) ([]entity.WasteEntry, error) {
	query := `
		SELECT` + entryColumns + `
		FROM waste_entries e
		LEFT JOIN users u ON u.id = e.operator_id
		ORDER BY e.created_at DESC
		LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent waste entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// FindByDateRange entradas del rango con filtros opcionales, más antiguas primero.
func (r *WasteEntryRepo) FindByDateRange(ctx context.Context, start, end time.Time, filters repository.EntryFilters) ([]entity.WasteEntry, error) {
	query := `
		SELECT` + entryColumns + `
		FROM waste_entries e
		LEFT JOIN users u ON u.id = e.operator_id
		WHERE e.created_at BETWEEN $1 AND $2
			AND ($3 = '' OR e.waste_type = $3)
			AND ($4 = '' OR e.zone = $4)
			AND ($5 = '' OR e.status = $5)
		ORDER BY e.created_at ASC`
	rows, err := r.db.Query(ctx, query, start, end, filters.WasteType, filters.Zone, filters.Status)
	if err != nil {
		return nil, fmt.Errorf("find waste entries by date range: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// SumNetCompletedByZone suma el peso neto de las entradas completed de la zona.
func (r *WasteEntryRepo) SumNetCompletedByZone(ctx context.Context, zone string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(gross_weight - tare_weight), 0)
		FROM waste_entries
		WHERE zone = $1 AND status = 'completed'`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, zone).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum net completed by zone: %w", err)
	}
	return sum, nil
}

// UsageByZone ocupación de cada zona con entradas completed.
func (r *WasteEntryRepo) UsageByZone(ctx context.Context) ([]repository.ZoneUsage, error) {
	query := `
		SELECT zone, COALESCE(SUM(gross_weight - tare_weight), 0)
		FROM waste_entries
		WHERE status = 'completed'
		GROUP BY zone`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("usage by zone: %w", err)
	}
	defer rows.Close()
	var list []repository.ZoneUsage
	for rows.Next() {
		var u repository.ZoneUsage
		if err := rows.Scan(&u.Zone, &u.Tonnage); err != nil {
			return nil, fmt.Errorf("scan zone usage: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Distribution agrupa por tipo de residuo dentro del rango (nil = sin límite).
func (r *WasteEntryRepo) Distribution(ctx context.Context, start, end *time.Time) ([]repository.TypeAggregate, error) {
	query := `
		SELECT waste_type, COUNT(*), COALESCE(SUM(gross_weight - tare_weight), 0)
		FROM waste_entries
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			AND ($2::timestamptz IS NULL OR created_at <= $2)
		GROUP BY waste_type`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("waste distribution: %w", err)
	}
	defer rows.Close()
	var list []repository.TypeAggregate
	for rows.Next() {
		var a repository.TypeAggregate
		if err := rows.Scan(&a.WasteType, &a.Count, &a.Tonnage); err != nil {
			return nil, fmt.Errorf("scan type aggregate: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// TotalProcessedTonnes suma el peso neto de todas las entradas completed.
func (r *WasteEntryRepo) TotalProcessedTonnes(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(gross_weight - tare_weight), 0)
		FROM waste_entries
		WHERE status = 'completed'`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("total processed tonnes: %w", err)
	}
	return sum, nil
}

func scanEntries(rows pgx.Rows) ([]entity.WasteEntry, error) {
	var list []entity.WasteEntry
	for rows.Next() {
		var e entity.WasteEntry
		if err := rows.Scan(
			&e.ID, &e.TransporterPlate, &e.TransporterCompany, &e.GrossWeight, &e.TareWeight,
			&e.WasteType, &e.Zone, &e.Status, &e.ReceiptPhoto, &e.Notes, &e.RejectedReason,
			&e.OperatorID, &e.OperatorName, &e.ProcessedAt, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan waste entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
