package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecogestion/raee-api/internal/application/dto"
	"github.com/ecogestion/raee-api/internal/application/usecase"
	"github.com/ecogestion/raee-api/internal/domain"
	"github.com/ecogestion/raee-api/internal/domain/entity"
)

// fakeUserRepo repositorio en memoria con unicidad de username.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range r.users {
		if ex.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindFirstAdmin(_ context.Context) (*entity.User, error) {
	for _, u := range r.users {
		if u.Role == entity.RoleAdmin && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Caso: base vacía — el arranque crea el admin inicial con la contraseña
// hasheada, y con él ya hay autor para las alertas automáticas.
func TestEnsureAdmin_BaseVacia(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.EnsureAdmin(context.Background(), "admin", "admin123", "Administrador del Sistema")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := repo.FindFirstAdmin(context.Background())
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))
}

// Caso: ya hay un admin activo — no se crea otro.
func TestEnsureAdmin_AdminExistente(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["a-1"] = &entity.User{ID: "a-1", Username: "jefa", Role: entity.RoleAdmin, IsActive: true}
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.EnsureAdmin(context.Background(), "admin", "admin123", "Administrador del Sistema")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.users, 1)
}

// Caso: dos réplicas arrancan a la vez — la segunda ve ErrDuplicate y lo
// trata como "ya creado".
func TestEnsureAdmin_CarreraDeArranque(t *testing.T) {
	repo := newFakeUserRepo()
	// el otro proceso insertó entre el check y el insert; mismo username pero
	// el FindFirstAdmin del fake aún no lo ve como admin activo
	repo.users["a-1"] = &entity.User{ID: "a-1", Username: "admin", Role: entity.RoleAdmin, IsActive: false}
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.EnsureAdmin(context.Background(), "admin", "admin123", "Administrador del Sistema")
	require.NoError(t, err)
	assert.False(t, created)
}

// Caso: credenciales configuradas inválidas.
func TestEnsureAdmin_CredencialesInvalidas(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.EnsureAdmin(context.Background(), "admin", "abc", "Administrador del Sistema")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso: registro gobernado por ManageUsers; username duplicado rechazado.
func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Register(context.Background(), dto.RegisterUserRequest{
		Username: "Operador1",
		Password: "clave123",
		FullName: "Operador de Báscula",
	}, "adm-1", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "operador1", out.Username)
	assert.Equal(t, entity.RoleUser, out.Role)

	_, err = uc.Register(context.Background(), dto.RegisterUserRequest{
		Username: "operador1",
		Password: "clave123",
		FullName: "Otro Operador",
	}, "adm-1", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Register(context.Background(), dto.RegisterUserRequest{
		Username: "operador2",
		Password: "clave123",
		FullName: "Operador",
	}, "usr-1", entity.RoleUser)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Caso: un admin no puede desactivarse a sí mismo.
func TestDeactivate_AutoDesactivacion(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["adm-1"] = &entity.User{ID: "adm-1", Username: "admin", Role: entity.RoleAdmin, IsActive: true}
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Deactivate(context.Background(), "adm-1", "adm-1", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
