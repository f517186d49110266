package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogestion/raee-api/internal/application/alerts"
	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/domain"
	"github.com/ecogestion/raee-api/internal/domain/entity"
	"github.com/ecogestion/raee-api/internal/domain/repository"
	"github.com/ecogestion/raee-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeAlertRepo replica el índice único parcial: una alerta de capacidad
// activa por zona. El segundo insert devuelve domain.ErrConflict.
type fakeAlertRepo struct {
	alerts map[string]*entity.Alert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: map[string]*entity.Alert{}}
}

func (r *fakeAlertRepo) Create(_ context.Context, a *entity.Alert) error {
	if a.Type == entity.AlertTypeCapacity && a.IsActive {
		for _, ex := range r.alerts {
			if ex.Type == entity.AlertTypeCapacity && ex.IsActive && ex.Zone == a.Zone {
				return domain.ErrConflict
			}
		}
	}
	cp := *a
	r.alerts[a.ID] = &cp
	return nil
}

func (r *fakeAlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	a, ok := r.alerts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAlertRepo) Update(_ context.Context, a *entity.Alert) error {
	if _, ok := r.alerts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.alerts[a.ID] = &cp
	return nil
}

func (r *fakeAlertRepo) ListActive(_ context.Context, limit int) ([]entity.Alert, error) {
	var out []entity.Alert
	for _, a := range r.alerts {
		if a.IsActive {
			out = append(out, *a)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) ListActiveByZone(_ context.Context, zone string) ([]entity.Alert, error) {
	var out []entity.Alert
	for _, a := range r.alerts {
		if a.IsActive && a.Zone == zone {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) ListCritical(_ context.Context) ([]entity.Alert, error) {
	var out []entity.Alert
	for _, a := range r.alerts {
		if a.IsActive && (a.Priority == entity.PriorityHigh || a.Priority == entity.PriorityCritical) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) FindActiveCapacityByZone(_ context.Context, zone string) (*entity.Alert, error) {
	for _, a := range r.alerts {
		if a.IsActive && a.Type == entity.AlertTypeCapacity && a.Zone == zone {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) activeCapacityCount(zone string) int {
	n := 0
	for _, a := range r.alerts {
		if a.IsActive && a.Type == entity.AlertTypeCapacity && a.Zone == zone {
			n++
		}
	}
	return n
}

// fakeTxRunner ejecuta el callback directamente sobre el repo compartido.
type fakeTxRunner struct {
	repo *fakeAlertRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.AlertRepository) error) error {
	return fn(r.repo)
}

// fakeSumRepo solo responde la suma por zona; el resto no se usa aquí.
type fakeSumRepo struct {
	sums map[string]decimal.Decimal
}

func (r *fakeSumRepo) Create(_ context.Context, _ *entity.WasteEntry) error  { return nil }
func (r *fakeSumRepo) Update(_ context.Context, _ *entity.WasteEntry) error  { return nil }
func (r *fakeSumRepo) Latest(_ context.Context) (*entity.WasteEntry, error)  { return nil, nil }
func (r *fakeSumRepo) GetByID(_ context.Context, _ string) (*entity.WasteEntry, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeSumRepo) ListRecent(_ context.Context, _ int) ([]entity.WasteEntry, error) {
	return nil, nil
}
func (r *fakeSumRepo) FindByDateRange(_ context.Context, _, _ time.Time, _ repository.EntryFilters) ([]entity.WasteEntry, error) {
	return nil, nil
}
func (r *fakeSumRepo) SumNetCompletedByZone(_ context.Context, zone string) (decimal.Decimal, error) {
	return r.sums[zone], nil
}
func (r *fakeSumRepo) UsageByZone(_ context.Context) ([]repository.ZoneUsage, error) {
	return nil, nil
}
func (r *fakeSumRepo) Distribution(_ context.Context, _, _ *time.Time) ([]repository.TypeAggregate, error) {
	return nil, nil
}
func (r *fakeSumRepo) TotalProcessedTonnes(_ context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// fakeUserRepo con un único admin activo.
type fakeUserRepo struct {
	admin *entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(_ context.Context, _ string) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *fakeUserRepo) FindByUsername(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) List(_ context.Context) ([]entity.User, error)  { return nil, nil }
func (r *fakeUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }
func (r *fakeUserRepo) FindFirstAdmin(_ context.Context) (*entity.User, error) {
	if r.admin == nil {
		return nil, nil
	}
	cp := *r.admin
	return &cp, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newMonitor(sums map[string]decimal.Decimal, admin *entity.User) (*alerts.UseCase, *fakeAlertRepo) {
	alertRepo := newFakeAlertRepo()
	return alerts.NewUseCase(
		&fakeTxRunner{repo: alertRepo},
		alertRepo,
		&fakeSumRepo{sums: sums},
		&fakeUserRepo{admin: admin},
		decimal.NewFromInt(500),
		testLogger(),
	), alertRepo
}

func testAdmin() *entity.User {
	return &entity.User{ID: "adm-1", Username: "admin", Role: entity.RoleAdmin, IsActive: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Monitor de capacidad
// ──────────────────────────────────────────────────────────────────────────────

// Caso: las bandas de ocupación 65/75/85/95% producen nada/medium/high/critical.
func TestCheckZoneCapacity_Bandas(t *testing.T) {
	cases := []struct {
		name     string
		tonnes   string
		priority string // "" = sin alerta
	}{
		{"65% sin alerta", "325", ""},
		{"75% media", "375", entity.PriorityMedium},
		{"85% alta", "425", entity.PriorityHigh},
		{"95% crítica", "475", entity.PriorityCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo := newMonitor(map[string]decimal.Decimal{
				entity.ZoneA: decimal.RequireFromString(tc.tonnes),
			}, testAdmin())

			require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneA))

			if tc.priority == "" {
				assert.Zero(t, repo.activeCapacityCount(entity.ZoneA))
				return
			}
			require.Equal(t, 1, repo.activeCapacityCount(entity.ZoneA))
			for _, a := range repo.alerts {
				assert.Equal(t, tc.priority, a.Priority)
				assert.Equal(t, "adm-1", a.CreatedBy, "el primer admin activo firma la alerta")
			}
		})
	}
}

// Caso: una entrada de 8.7 t en una zona de 500 t queda al 2% → sin alerta.
func TestCheckZoneCapacity_OcupacionBaja(t *testing.T) {
	uc, repo := newMonitor(map[string]decimal.Decimal{
		entity.ZoneA: decimal.RequireFromString("8.7"),
	}, testAdmin())

	require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneA))
	assert.Zero(t, repo.activeCapacityCount(entity.ZoneA))
}

// Caso: compuerta de deduplicación — verificar dos veces con alerta activa
// deja UNA sola alerta, sin error.
func TestCheckZoneCapacity_Deduplicacion(t *testing.T) {
	uc, repo := newMonitor(map[string]decimal.Decimal{
		entity.ZoneB: decimal.RequireFromString("400"),
	}, testAdmin())

	require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneB))
	require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneB))

	assert.Equal(t, 1, repo.activeCapacityCount(entity.ZoneB),
		"la segunda verificación no duplica la alerta activa")
}

// Caso: la alerta abierta no se escala aunque la ocupación empeore.
func TestCheckZoneCapacity_SinEscalamiento(t *testing.T) {
	sums := map[string]decimal.Decimal{entity.ZoneC: decimal.RequireFromString("375")}
	uc, repo := newMonitor(sums, testAdmin())

	require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneC))

	// la ocupación sube a banda crítica con la alerta media aún activa
	sums[entity.ZoneC] = decimal.RequireFromString("480")
	require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneC))

	require.Equal(t, 1, repo.activeCapacityCount(entity.ZoneC))
	for _, a := range repo.alerts {
		assert.Equal(t, entity.PriorityMedium, a.Priority,
			"la alerta existente conserva su prioridad original")
	}
}

// Caso: tras resolver la alerta, una nueva verificación levanta otra.
func TestCheckZoneCapacity_NuevaAlertaTrasResolver(t *testing.T) {
	uc, repo := newMonitor(map[string]decimal.Decimal{
		entity.ZoneD: decimal.RequireFromString("450"),
	}, testAdmin())

	require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneD))

	var alertID string
	for id := range repo.alerts {
		alertID = id
	}
	_, err := uc.Resolve(context.Background(), alertID, "adm-1", entity.RoleAdmin, "zona compactada")
	require.NoError(t, err)
	assert.Zero(t, repo.activeCapacityCount(entity.ZoneD))

	require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneD))
	assert.Equal(t, 1, repo.activeCapacityCount(entity.ZoneD))
}

// Caso: un insert concurrente aparece como ErrConflict y el monitor lo trata
// como benigno.
func TestCheckZoneCapacity_ConflictoBenigno(t *testing.T) {
	alertRepo := newFakeAlertRepo()
	// tx runner que simula la carrera: otro escritor inserta entre el check y
	// el insert del callback
	racer := &racingTxRunner{repo: alertRepo}
	uc := alerts.NewUseCase(
		racer,
		alertRepo,
		&fakeSumRepo{sums: map[string]decimal.Decimal{entity.ZoneA: decimal.RequireFromString("400")}},
		&fakeUserRepo{admin: testAdmin()},
		decimal.NewFromInt(500),
		testLogger(),
	)

	require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneA),
		"el conflicto por carrera no es un error para el llamador")
	assert.Equal(t, 1, alertRepo.activeCapacityCount(entity.ZoneA))
}

// racingTxRunner inserta una alerta rival justo antes de ejecutar el callback.
type racingTxRunner struct {
	repo *fakeAlertRepo
}

func (r *racingTxRunner) Run(ctx context.Context, fn func(repository.AlertRepository) error) error {
	return fn(&racingAlertRepo{fakeAlertRepo: r.repo})
}

// racingAlertRepo responde "no hay alerta" al check pero el insert rival ya
// ocurrió: Create devuelve ErrConflict.
type racingAlertRepo struct {
	*fakeAlertRepo
}

func (r *racingAlertRepo) FindActiveCapacityByZone(_ context.Context, _ string) (*entity.Alert, error) {
	return nil, nil
}

func (r *racingAlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	rival := *a
	rival.ID = "rival-" + a.ID
	if err := r.fakeAlertRepo.Create(ctx, &rival); err != nil {
		return err
	}
	return r.fakeAlertRepo.Create(ctx, a)
}

// Caso: sin admin activo no hay autor y la alerta automática se omite.
func TestCheckZoneCapacity_SinAdminNoAlerta(t *testing.T) {
	uc, repo := newMonitor(map[string]decimal.Decimal{
		entity.ZoneA: decimal.RequireFromString("475"),
	}, nil)

	require.NoError(t, uc.CheckZoneCapacity(context.Background(), entity.ZoneA))
	assert.Zero(t, repo.activeCapacityCount(entity.ZoneA))
}

// Caso: zona fuera del enum.
func TestCheckZoneCapacity_ZonaInvalida(t *testing.T) {
	uc, _ := newMonitor(map[string]decimal.Decimal{}, testAdmin())
	err := uc.CheckZoneCapacity(context.Background(), "Zona X")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas ambientales y manuales
// ──────────────────────────────────────────────────────────────────────────────

// Caso: la prioridad ambiental depende de cuánto supera el umbral.
func TestCreateEnvironmentalAlert_Prioridades(t *testing.T) {
	cases := []struct {
		name     string
		value    string
		priority string
	}{
		{"bajo umbral informativa", "40", entity.PriorityMedium},
		{"sobre umbral alta", "60", entity.PriorityHigh},
		{"1.5x umbral crítica", "80", entity.PriorityCritical},
	}
	threshold := decimal.NewFromInt(50)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo := newMonitor(map[string]decimal.Decimal{}, testAdmin())

			err := uc.CreateEnvironmentalAlert(context.Background(), "Metano",
				decimal.RequireFromString(tc.value), threshold, entity.ZoneA, "adm-1")
			require.NoError(t, err)

			require.Len(t, repo.alerts, 1)
			for _, a := range repo.alerts {
				assert.Equal(t, entity.AlertTypeEnvironmental, a.Type)
				assert.Equal(t, tc.priority, a.Priority)
			}
		})
	}
}

// Caso: alerta manual con zona vacía cae en "General".
func TestCreateManualAlert_ZonaPorDefecto(t *testing.T) {
	uc, _ := newMonitor(map[string]decimal.Decimal{}, testAdmin())

	out, err := uc.CreateManualAlert(context.Background(), dto.CreateAlertRequest{
		Type:     entity.AlertTypeMaintenance,
		Priority: entity.PriorityLow,
		Title:    "Mantenimiento báscula",
		Message:  "Calibración programada",
	}, "usr-1", entity.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, entity.ZoneGeneral, out.Zone)
}

// Caso: guest no puede crear alertas manuales.
func TestCreateManualAlert_GuestProhibido(t *testing.T) {
	uc, _ := newMonitor(map[string]decimal.Decimal{}, testAdmin())

	_, err := uc.CreateManualAlert(context.Background(), dto.CreateAlertRequest{
		Type:     entity.AlertTypeIncident,
		Priority: entity.PriorityHigh,
		Title:    "Derrame",
		Message:  "Derrame en vía de acceso",
	}, "g-1", entity.RoleGuest)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Caso: resolver limpia el estado activo; reactivar lo restaura.
func TestResolveYReactivate(t *testing.T) {
	uc, repo := newMonitor(map[string]decimal.Decimal{}, testAdmin())

	created, err := uc.CreateManualAlert(context.Background(), dto.CreateAlertRequest{
		Type:     entity.AlertTypeSecurity,
		Priority: entity.PriorityHigh,
		Title:    "Acceso no autorizado",
		Message:  "Vehículo sin registro en portería",
		Zone:     entity.ZoneB,
	}, "usr-1", entity.RoleUser)
	require.NoError(t, err)

	resolved, err := uc.Resolve(context.Background(), created.ID, "adm-1", entity.RoleAdmin, "falsa alarma")
	require.NoError(t, err)
	assert.False(t, resolved.IsActive)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, "falsa alarma", resolved.ResolutionNotes)

	reactivated, err := uc.Reactivate(context.Background(), created.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)
	assert.Nil(t, reactivated.ResolvedAt)
	assert.Empty(t, reactivated.ResolutionNotes)

	assert.Equal(t, 1, len(repo.alerts))
}
