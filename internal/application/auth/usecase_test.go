package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kdu-dev/painel-api/internal/application/dto"
	"github.com/kdu-dev/painel-api/internal/domain"
	"github.com/kdu-dev/painel-api/internal/domain/entity"
	pkgjwt "github.com/kdu-dev/painel-api/pkg/jwt"
)

type fakeUserRepo struct {
	user *entity.User
}

func (f *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }
func (f *fakeUserRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if f.user == nil || f.user.Username != username {
		return nil, domain.ErrUserNotFound
	}
	return f.user, nil
}
func (f *fakeUserRepo) List(context.Context) ([]*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(context.Context, *entity.User) error   { return nil }
func (f *fakeUserRepo) Delete(context.Context, string) error         { return nil }

const testSecret = "segredo-de-teste"

func testUser(t *testing.T, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:           "u-1",
		Username:     "joana",
		Name:         "Joana Lima",
		PasswordHash: string(hash),
		Permissions:  []string{entity.PermissionFabrics},
		IsActive:     active,
	}
}

func newUseCase(repo *fakeUserRepo) *UseCase {
	return NewUseCase(repo, JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "painel-api-test"})
}

func TestLogin(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{user: testUser(t, "senha-forte", true)})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "senha-forte"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "joana", out.User.Username)

	// O token emitido carrega os claims do usuário.
	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.True(t, claims.HasPermission(entity.PermissionFabrics))
	assert.False(t, claims.HasPermission(entity.PermissionFiscal))
}

// Senha errada e usuário inexistente devolvem o mesmo erro.
func TestLogin_SenhaErrada(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{user: testUser(t, "senha-forte", true)})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "outra"})
	require.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ninguem", Password: "x"})
	require.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestLogin_ContaInativa(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{user: testUser(t, "senha-forte", false)})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "joana", Password: "senha-forte"})
	require.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestLogin_CamposVazios(t *testing.T) {
	uc := newUseCase(&fakeUserRepo{})

	_, err := uc.Login(context.Background(), dto.LoginRequest{})
	require.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}
