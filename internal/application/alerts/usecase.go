// Package alerts contiene el monitor de capacidad por zona, la compuerta de
// deduplicación de alertas de capacidad y la gestión de alertas manuales.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain"
	"github.com/ecogestion/raee-api/internal/domain/capacity"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/permission"
	"github.com/ecogestion/raee-api/internal/domain/repository"
	"github.com/ecogestion/raee-api/pkg/logger"
)

// dashboardAlertLimit alertas activas incluidas en el dashboard.
const dashboardAlertLimit = 5

// UseCase monitor de capacidad y gestión de alertas.
type UseCase struct {
	txRunner  AlertTxRunner
	alertRepo repository.AlertRepository
	entryRepo repository.WasteEntryRepository
	userRepo  repository.UserRepository
	zoneMax   decimal.Decimal // capacidad máxima por zona (t)
	log       *logger.Logger
}

// NewUseCase construye el caso de uso. zoneMax es la capacidad configurada por
// zona en toneladas (500 por defecto).
func NewUseCase(
	txRunner AlertTxRunner,
	alertRepo repository.AlertRepository,
	entryRepo repository.WasteEntryRepository,
	userRepo repository.UserRepository,
	zoneMax decimal.Decimal,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		alertRepo: alertRepo,
		entryRepo: entryRepo,
		userRepo:  userRepo,
		zoneMax:   zoneMax,
		log:       log,
	}
}

// CheckZoneCapacity recalcula la ocupación de la zona (suma de peso neto de
// entradas completed) y solicita una alerta de capacidad si la banda lo exige.
// Invocación síncrona tras escrituras relevantes; no hay barrido periódico.
func (uc *UseCase) CheckZoneCapacity(ctx context.Context, zone string) error {
	if !entity.ValidZone(zone) {
		return domain.ErrInvalidInput
	}
	current, err := uc.entryRepo.SumNetCompletedByZone(ctx, zone)
	if err != nil {
		return fmt.Errorf("ocupación de zona %s: %w", zone, err)
	}
	pct := capacity.Percentage(current, uc.zoneMax)
	band := capacity.BandFor(pct)
	if band == capacity.BandNone {
		return nil
	}
	return uc.createCapacityAlertIfAbsent(ctx, zone, pct, band)
}

// CheckAllZones ejecuta el monitor para las cuatro zonas fijas.
func (uc *UseCase) CheckAllZones(ctx context.Context) error {
	for _, zone := range entity.Zones {
		if err := uc.CheckZoneCapacity(ctx, zone); err != nil {
			return err
		}
	}
	return nil
}

// createCapacityAlertIfAbsent compuerta de deduplicación: dentro de una
// transacción busca la alerta de capacidad activa de la zona; si existe no
// hace nada (la alerta abierta NO se escala al empeorar la ocupación) y si no
// existe la crea. Un insert concurrente que viole el índice único parcial
// aparece como ErrConflict y se trata como "ya levantada".
func (uc *UseCase) createCapacityAlertIfAbsent(ctx context.Context, zone string, pct int, band capacity.Band) error {
	admin, err := uc.userRepo.FindFirstAdmin(ctx)
	if err != nil {
		return fmt.Errorf("resolver autor de alerta: %w", err)
	}
	if admin == nil {
		// Sin admin activo no hay autor para la alerta automática
		uc.log.Warn().
			Str("zone", zone).
			Int("percentage", pct).
			Msg("alerta de capacidad omitida: no hay admin activo")
		return nil
	}

	err = uc.txRunner.Run(ctx, func(alertRepo repository.AlertRepository) error {
		existing, err := alertRepo.FindActiveCapacityByZone(ctx, zone)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		title, message := band.AlertContent(zone, pct)
		now := time.Now()
		alert := &entity.Alert{
			ID:        uuid.New().String(),
			Type:      entity.AlertTypeCapacity,
			Priority:  band.Priority(),
			Title:     title,
			Message:   message,
			Zone:      zone,
			IsActive:  true,
			CreatedBy: admin.ID,
			Metadata:  map[string]any{"percentage": pct},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := alertRepo.Create(ctx, alert); err != nil {
			return err
		}
		uc.log.Warn().
			Str("zone", zone).
			Int("percentage", pct).
			Str("priority", alert.Priority).
			Msg("alerta de capacidad generada")
		return nil
	})
	if errors.Is(err, domain.ErrConflict) {
		// Otro escritor insertó la alerta entre el check y el insert
		uc.log.Debug().Str("zone", zone).Msg("alerta de capacidad ya levantada por escritura concurrente")
		return nil
	}
	return err
}

// CreateEnvironmentalAlert genera una alerta ambiental a partir de una lectura
// que supera su umbral: >1.5x crítico, >1x alto, el resto informativa media.
func (uc *UseCase) CreateEnvironmentalAlert(ctx context.Context, name string, value, threshold decimal.Decimal, zone, createdBy string) error {
	priority := entity.PriorityMedium
	title := "Indicador Ambiental"
	message := fmt.Sprintf("%s: %s", name, value.String())

	switch {
	case value.GreaterThan(threshold.Mul(decimal.RequireFromString("1.5"))):
		priority = entity.PriorityCritical
		title = "Alerta Ambiental Crítica"
		message = fmt.Sprintf("¡CRÍTICO! %s está en %s, muy por encima del umbral (%s)", name, value.String(), threshold.String())
	case value.GreaterThan(threshold):
		priority = entity.PriorityHigh
		title = "Alerta Ambiental"
		message = fmt.Sprintf("%s está en %s, por encima del umbral normal (%s)", name, value.String(), threshold.String())
	}

	if zone == "" {
		zone = entity.ZoneGeneral
	}
	now := time.Now()
	alert := &entity.Alert{
		ID:        uuid.New().String(),
		Type:      entity.AlertTypeEnvironmental,
		Priority:  priority,
		Title:     title,
		Message:   message,
		Zone:      zone,
		IsActive:  true,
		CreatedBy: createdBy,
		Metadata: map[string]any{
			"indicator": name,
			"value":     value.String(),
			"threshold": threshold.String(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return uc.alertRepo.Create(ctx, alert)
}

// CreateManualAlert crea una alerta manual validando tipo, prioridad y zona.
func (uc *UseCase) CreateManualAlert(ctx context.Context, in dto.CreateAlertRequest, userID, userRole string) (*dto.AlertResponse, error) {
	if !permission.Allows(userRole, permission.CreateEntry) {
		return nil, domain.ErrForbidden
	}
	zone := in.Zone
	if zone == "" {
		zone = entity.ZoneGeneral
	}
	if !entity.ValidAlertType(in.Type) || !entity.ValidAlertPriority(in.Priority) || !entity.ValidAlertZone(zone) {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Message) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	alert := &entity.Alert{
		ID:        uuid.New().String(),
		Type:      in.Type,
		Priority:  in.Priority,
		Title:     strings.TrimSpace(in.Title),
		Message:   strings.TrimSpace(in.Message),
		Zone:      zone,
		IsActive:  true,
		CreatedBy: userID,
		Metadata:  in.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}
	return toAlertResponse(alert), nil
}

// ActiveAlerts alertas activas por prioridad y recencia. limit <= 0 = todas.
func (uc *UseCase) ActiveAlerts(ctx context.Context, limit int) ([]dto.AlertResponse, error) {
	list, err := uc.alertRepo.ListActive(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toAlertResponses(list), nil
}

// DashboardAlerts las 5 alertas activas más relevantes.
func (uc *UseCase) DashboardAlerts(ctx context.Context) ([]dto.AlertResponse, error) {
	return uc.ActiveAlerts(ctx, dashboardAlertLimit)
}

// CriticalAlerts alertas activas high o critical.
func (uc *UseCase) CriticalAlerts(ctx context.Context) ([]dto.AlertResponse, error) {
	list, err := uc.alertRepo.ListCritical(ctx)
	if err != nil {
		return nil, err
	}
	return toAlertResponses(list), nil
}

// AlertsByZone alertas activas de una zona.
func (uc *UseCase) AlertsByZone(ctx context.Context, zone string) ([]dto.AlertResponse, error) {
	if !entity.ValidAlertZone(zone) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.alertRepo.ListActiveByZone(ctx, zone)
	if err != nil {
		return nil, err
	}
	return toAlertResponses(list), nil
}

// Resolve marca la alerta como resuelta (inactiva) con autor y notas.
func (uc *UseCase) Resolve(ctx context.Context, alertID, userID, userRole, notes string) (*dto.AlertResponse, error) {
	if !permission.Allows(userRole, permission.ManageEntries) {
		return nil, domain.ErrForbidden
	}
	alert, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	alert.IsActive = false
	alert.ResolvedAt = &now
	alert.ResolvedBy = userID
	alert.ResolutionNotes = notes
	alert.UpdatedAt = now
	if err := uc.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}
	uc.log.Info().Str("alert_id", alert.ID).Str("resolved_by", userID).Msg("alerta resuelta")
	return toAlertResponse(alert), nil
}

// Reactivate vuelve a activar una alerta resuelta limpiando su resolución.
func (uc *UseCase) Reactivate(ctx context.Context, alertID, userRole string) (*dto.AlertResponse, error) {
	if !permission.Allows(userRole, permission.ManageEntries) {
		return nil, domain.ErrForbidden
	}
	alert, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	alert.IsActive = true
	alert.ResolvedAt = nil
	alert.ResolvedBy = ""
	alert.ResolutionNotes = ""
	alert.UpdatedAt = time.Now()
	if err := uc.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}
	return toAlertResponse(alert), nil
}

// MarkRead marca la alerta como leída.
func (uc *UseCase) MarkRead(ctx context.Context, alertID string) (*dto.AlertResponse, error) {
	alert, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	alert.IsRead = true
	alert.UpdatedAt = time.Now()
	if err := uc.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}
	return toAlertResponse(alert), nil
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:              a.ID,
		Type:            a.Type,
		Priority:        a.Priority,
		Title:           a.Title,
		Message:         a.Message,
		Zone:            a.Zone,
		IsActive:        a.IsActive,
		IsRead:          a.IsRead,
		ResolvedAt:      a.ResolvedAt,
		ResolvedBy:      a.ResolvedBy,
		ResolutionNotes: a.ResolutionNotes,
		CreatedBy:       a.CreatedBy,
		Metadata:        a.Metadata,
		CreatedAt:       a.CreatedAt,
	}
}

func toAlertResponses(list []entity.Alert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, 0, len(list))
	for i := range list {
		out = append(out, *toAlertResponse(&list[i]))
	}
	return out
}
