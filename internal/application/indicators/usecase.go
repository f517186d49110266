// Package indicators contiene el registro de lecturas ambientales y la
// generación de alertas ambientales derivadas.
package indicators

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

// AlertRaiser genera una alerta ambiental (lo implementa alerts.UseCase).
type AlertRaiser interface {
	CreateEnvironmentalAlert(ctx context.Context, name string, value, threshold decimal.Decimal, zone, createdBy string) error
}

// UseCase registro y consulta de indicadores ambientales.
type UseCase struct {
	indicatorRepo repository.IndicatorRepository
	alertRaiser   AlertRaiser
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(indicatorRepo repository.IndicatorRepository, alertRaiser AlertRaiser, log *logger.Logger) *UseCase {
	return &UseCase{indicatorRepo: indicatorRepo, alertRaiser: alertRaiser, log: log}
}

// Record registra una lectura. El estado se deriva de los umbrales; una
// lectura fuera de lo normal genera una alerta ambiental. El fallo de la
// alerta no revierte la lectura, solo se registra.
func (uc *UseCase) Record(ctx context.Context, in dto.RecordIndicatorRequest, userID, userRole string) (*dto.IndicatorResponse, error) {
	if !permission.Allows(userRole, permission.CreateEntry) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidIndicatorType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Value.IsNegative() || !in.CriticalThreshold.GreaterThan(in.WarningThreshold) {
		return nil, domain.ErrInvalidInput
	}
	zone := in.Zone
	if zone == "" {
		zone = entity.ZoneGeneral
	}
	if !entity.ValidAlertZone(zone) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	ind := &entity.EnvironmentalIndicator{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		Type:              in.Type,
		Value:             in.Value,
		Unit:              strings.TrimSpace(in.Unit),
		Zone:              zone,
		WarningThreshold:  in.WarningThreshold,
		CriticalThreshold: in.CriticalThreshold,
		SensorID:          in.SensorID,
		RecordedBy:        userID,
		Notes:             in.Notes,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	ind.Status = ind.DeriveStatus()

	if err := uc.indicatorRepo.Create(ctx, ind); err != nil {
		return nil, err
	}

	if ind.Status != entity.IndicatorNormal {
		if err := uc.alertRaiser.CreateEnvironmentalAlert(ctx, ind.Name, ind.Value, ind.WarningThreshold, ind.Zone, userID); err != nil {
			uc.log.Error().Err(err).Str("indicator", ind.Name).Msg("alerta ambiental fallida")
		}
	}

	resp := toResponse(ind)
	return &resp, nil
}

// ListByZone lecturas activas de una zona.
func (uc *UseCase) ListByZone(ctx context.Context, zone string) ([]dto.IndicatorResponse, error) {
	if !entity.ValidAlertZone(zone) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.indicatorRepo.ListByZone(ctx, zone)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IndicatorResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out, nil
}

func toResponse(i *entity.EnvironmentalIndicator) dto.IndicatorResponse {
	return dto.IndicatorResponse{
		ID:                i.ID,
		Name:              i.Name,
		Type:              i.Type,
		Value:             i.Value,
		Unit:              i.Unit,
		Status:            i.Status,
		Zone:              i.Zone,
		WarningThreshold:  i.WarningThreshold,
		CriticalThreshold: i.CriticalThreshold,
		SensorID:          i.SensorID,
		RecordedAt:        i.CreatedAt,
	}
}
