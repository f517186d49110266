// Package entries contiene los casos de uso de entradas de residuos: creación
// con validación por lotes, el motor de transición de estados y las consultas
// de reporte e historial.
package entries

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/permission"
	"github.com/ecogestion/raee-api/internal/domain/repository"
	"github.com/ecogestion/raee-api/pkg/logger"
)

// UseCase casos de uso de entradas de residuos.
type UseCase struct {
	entryRepo repository.WasteEntryRepository
	capacity  CapacityChecker
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(entryRepo repository.WasteEntryRepository, capacity CapacityChecker, log *logger.Logger) *UseCase {
	return &UseCase{entryRepo: entryRepo, capacity: capacity, log: log}
}

// validateEntry valida por lotes los datos de creación: reporta TODAS las
// reglas violadas, no solo la primera.
func validateEntry(in dto.CreateWasteEntryRequest) []string {
	var rules []string
	if strings.TrimSpace(in.TransporterPlate) == "" {
		rules = append(rules, "La placa del transportista es requerida")
	}
	if strings.TrimSpace(in.TransporterCompany) == "" {
		rules = append(rules, "La empresa transportista es requerida")
	}
	if !in.GrossWeight.GreaterThan(decimal.Zero) {
		rules = append(rules, "El peso bruto debe ser mayor a 0")
	}
	if !in.TareWeight.GreaterThan(decimal.Zero) {
		rules = append(rules, "El peso tara debe ser mayor a 0")
	}
	if in.GrossWeight.GreaterThan(decimal.Zero) && in.TareWeight.GreaterThan(decimal.Zero) &&
		in.TareWeight.GreaterThanOrEqual(in.GrossWeight) {
		rules = append(rules, "El peso tara no puede ser mayor o igual al peso bruto")
	}
	if !entity.ValidWasteType(in.WasteType) {
		rules = append(rules, "Tipo de residuo inválido")
	}
	if !entity.ValidZone(in.Zone) {
		rules = append(rules, "Zona de disposición inválida")
	}
	return rules
}

// CreateEntry valida y persiste una nueva entrada en estado pending.
// La placa se normaliza a mayúsculas. Tras persistir se recalcula la capacidad
// de la zona: una entrada pending no cambia la ocupación, pero la verificación
// captura la deriva de completados concurrentes.
func (uc *UseCase) CreateEntry(ctx context.Context, in dto.CreateWasteEntryRequest, operatorID, operatorRole string) (*dto.WasteEntryResponse, error) {
	if !permission.Allows(operatorRole, permission.CreateEntry) {
		return nil, domain.ErrForbidden
	}
	if rules := validateEntry(in); len(rules) > 0 {
		return nil, &domain.ValidationError{Rules: rules}
	}

	now := time.Now()
	entry := &entity.WasteEntry{
		ID:                 uuid.New().String(),
		TransporterPlate:   strings.ToUpper(strings.TrimSpace(in.TransporterPlate)),
		TransporterCompany: strings.TrimSpace(in.TransporterCompany),
		GrossWeight:        in.GrossWeight,
		TareWeight:         in.TareWeight,
		WasteType:          in.WasteType,
		Zone:               in.Zone,
		Status:             entity.StatusPending,
		ReceiptPhoto:       in.ReceiptPhoto,
		Notes:              in.Notes,
		OperatorID:         operatorID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("entry_id", entry.ID).
		Str("zone", entry.Zone).
		Str("waste_type", entry.WasteType).
		Str("net_weight", entry.NetWeight().String()).
		Msg("entrada de residuos creada")

	uc.checkCapacity(ctx, entry.Zone)

	return toEntryResponse(entry), nil
}

// UpdateStatus aplica un cambio de estado a una entrada. Precondiciones en
// orden (gana la primera que falle): entrada existe, rol permitido, estado
// válido, razón de rechazo presente si aplica.
//
// No hay grafo de transición: cualquier estado puede pasar a cualquier otro.
// processedAt se estampa solo en el primer completed (completar de nuevo no
// reinicia el sello). Tras completar, se recalcula la capacidad de la zona;
// un fallo ahí no revierte el cambio de estado, solo se registra.
func (uc *UseCase) UpdateStatus(ctx context.Context, entryID, requestedStatus, actorID, actorRole, notes, rejectedReason string) (*dto.WasteEntryResponse, error) {
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if !permission.Allows(actorRole, permission.ManageEntries) {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidEntryStatus(requestedStatus) {
		return nil, domain.ErrInvalidInput
	}
	if requestedStatus == entity.StatusRejected && strings.TrimSpace(rejectedReason) == "" {
		return nil, domain.ErrInvalidInput
	}

	previous := entry.Status
	entry.Status = requestedStatus
	if notes != "" {
		entry.Notes = notes
	}
	if requestedStatus == entity.StatusRejected {
		entry.RejectedReason = strings.TrimSpace(rejectedReason)
	}
	if requestedStatus == entity.StatusCompleted && entry.ProcessedAt == nil {
		now := time.Now()
		entry.ProcessedAt = &now
	}
	entry.UpdatedAt = time.Now()

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("entry_id", entry.ID).
		Str("from", previous).
		Str("to", entry.Status).
		Str("actor_id", actorID).
		Msg("estado de entrada actualizado")

	if requestedStatus == entity.StatusCompleted {
		uc.checkCapacity(ctx, entry.Zone)
	}

	return toEntryResponse(entry), nil
}

// checkCapacity invoca el monitor de capacidad. El fallo no propaga: un
// cambio de estado aplicado con alerta fallida es una inconsistencia aceptada.
func (uc *UseCase) checkCapacity(ctx context.Context, zone string) {
	if err := uc.capacity.CheckZoneCapacity(ctx, zone); err != nil {
		uc.log.Error().Err(err).Str("zone", zone).Msg("verificación de capacidad fallida")
	}
}

// GetStatusHistory sintetiza el historial de estados de una entrada a partir
// de sus propios campos: creación en pending y estado actual si cambió.
func (uc *UseCase) GetStatusHistory(ctx context.Context, entryID, actorRole string) (*dto.EntryStatusHistoryResponse, error) {
	if !permission.Allows(actorRole, permission.ManageEntries) {
		return nil, domain.ErrForbidden
	}
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}

	history := []dto.StatusHistoryItem{{
		Status:    entity.StatusPending,
		Timestamp: entry.CreatedAt,
		User:      operatorLabel(entry),
		Notes:     "Entrada creada",
	}}
	if entry.Status != entity.StatusPending {
		ts := entry.UpdatedAt
		if entry.ProcessedAt != nil {
			ts = *entry.ProcessedAt
		}
		notes := entry.Notes
		if entry.Status == entity.StatusRejected && entry.RejectedReason != "" {
			notes = entry.RejectedReason
		}
		if notes == "" {
			notes = "Estado actualizado"
		}
		history = append(history, dto.StatusHistoryItem{
			Status:    entry.Status,
			Timestamp: ts,
			User:      operatorLabel(entry),
			Notes:     notes,
		})
	}
	return &dto.EntryStatusHistoryResponse{
		EntryID:       entry.ID,
		CurrentStatus: entry.Status,
		History:       history,
	}, nil
}

// RecentEntries últimas entradas registradas. limit <= 0 usa 10.
func (uc *UseCase) RecentEntries(ctx context.Context, limit int) ([]dto.WasteEntryResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	list, err := uc.entryRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WasteEntryResponse, 0, len(list))
	for i := range list {
		out = append(out, *toEntryResponse(&list[i]))
	}
	return out, nil
}

// LatestEntry la entrada más reciente, nil si no hay ninguna.
func (uc *UseCase) LatestEntry(ctx context.Context) (*dto.WasteEntryResponse, error) {
	entry, err := uc.entryRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return toEntryResponse(entry), nil
}

// BuildReport reporte por rango de fechas con filtros opcionales y resumen
// agrupado por tipo, zona y estado. El fin de rango se extiende al final del día.
func (uc *UseCase) BuildReport(ctx context.Context, start, end time.Time, filters repository.EntryFilters, actorRole string) (*dto.ReportResponse, error) {
	if !permission.Allows(actorRole, permission.ViewReports) {
		return nil, domain.ErrForbidden
	}
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), end.Location())
	list, err := uc.entryRepo.FindByDateRange(ctx, start, endOfDay, filters)
	if err != nil {
		return nil, err
	}

	summary := dto.ReportSummary{
		TotalEntries: len(list),
		ByType:       make(map[string]dto.ReportGroup, len(entity.WasteTypes)),
		ByZone:       make(map[string]dto.ReportGroup, len(entity.Zones)),
		ByStatus:     make(map[string]int, len(entity.EntryStatuses)),
	}
	total := decimal.Zero
	typeTotals := map[string]dto.ReportGroup{}
	zoneTotals := map[string]dto.ReportGroup{}
	statusTotals := map[string]int{}
	for i := range list {
		net := list[i].NetWeight()
		total = total.Add(net)

		tg := typeTotals[list[i].WasteType]
		tg.Count++
		tg.Tonnage = tg.Tonnage.Add(net)
		typeTotals[list[i].WasteType] = tg

		zg := zoneTotals[list[i].Zone]
		zg.Count++
		zg.Tonnage = zg.Tonnage.Add(net)
		zoneTotals[list[i].Zone] = zg

		statusTotals[list[i].Status]++
	}
	// Todos los grupos presentes aunque estén vacíos (contrato del reporte)
	for _, t := range entity.WasteTypes {
		g := typeTotals[t]
		g.Tonnage = g.Tonnage.Round(1)
		summary.ByType[t] = g
	}
	for _, z := range entity.Zones {
		g := zoneTotals[z]
		g.Tonnage = g.Tonnage.Round(1)
		summary.ByZone[z] = g
	}
	for _, s := range entity.EntryStatuses {
		summary.ByStatus[s] = statusTotals[s]
	}
	summary.TotalTonnage = total.Round(1)

	resp := &dto.ReportResponse{Summary: summary, Entries: make([]dto.WasteEntryResponse, 0, len(list))}
	for i := range list {
		resp.Entries = append(resp.Entries, *toEntryResponse(&list[i]))
	}
	return resp, nil
}

func operatorLabel(e *entity.WasteEntry) string {
	if e.OperatorName != "" {
		return e.OperatorName
	}
	return "N/A"
}

func toEntryResponse(e *entity.WasteEntry) *dto.WasteEntryResponse {
	return &dto.WasteEntryResponse{
		ID:                 e.ID,
		TransporterPlate:   e.TransporterPlate,
		TransporterCompany: e.TransporterCompany,
		GrossWeight:        e.GrossWeight,
		TareWeight:         e.TareWeight,
		NetWeight:          e.NetWeight(),
		WasteType:          e.WasteType,
		Zone:               e.Zone,
		Status:             e.Status,
		ReceiptPhoto:       e.ReceiptPhoto,
		Notes:              e.Notes,
		RejectedReason:     e.RejectedReason,
		Operator:           operatorLabel(e),
		ProcessedAt:        e.ProcessedAt,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
