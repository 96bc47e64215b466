package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/navbahor-erp/internal/application/auth"
	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type users map[string]*entity.User

func (u users) Create(context.Context, *entity.User) error { return nil }
func (u users) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, x := range u {
		if x.ID == id {
			return x, nil
		}
	}
	return nil, nil
}
func (u users) GetByUsername(_ context.Context, name string) (*entity.User, error) {
	return u[name], nil
}
func (u users) ListByRoles(context.Context, ...entity.Role) ([]*entity.User, error) { return nil, nil }
func (u users) List(context.Context) ([]*entity.User, error)                       { return nil, nil }
func (u users) Update(context.Context, *entity.User) error                         { return nil }
func (u users) Delete(context.Context, string) error                               { return nil }

type brigadiers map[string]*entity.BrigadierProfile

func (b brigadiers) Create(context.Context, *entity.Brigadier) error { return nil }
func (b brigadiers) GetByID(context.Context, string) (*entity.BrigadierProfile, error) {
	return nil, nil
}
func (b brigadiers) GetByUserID(_ context.Context, userID string) (*entity.BrigadierProfile, error) {
	return b[userID], nil
}
func (b brigadiers) List(context.Context) ([]*entity.BrigadierProfile, error) { return nil, nil }

type farmers map[string]*entity.Farmer

func (f farmers) Create(context.Context, *entity.Farmer) error             { return nil }
func (f farmers) GetByID(context.Context, string) (*entity.Farmer, error)  { return nil, nil }
func (f farmers) GetByINN(context.Context, string) (*entity.Farmer, error) { return nil, nil }
func (f farmers) List(context.Context) ([]*entity.Farmer, error)           { return nil, nil }
func (f farmers) Update(context.Context, *entity.Farmer) error             { return nil }
func (f farmers) GetByUserID(_ context.Context, userID string) (*entity.Farmer, error) {
	return f[userID], nil
}

func hash(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	us := users{
		"jasur":     {ID: "u-b", Username: "jasur", PasswordHash: hash(t, "secret1"), FullName: "Karimov Jasur", Role: entity.RoleBrigadier},
		"305000111": {ID: "u-f", Username: "305000111", PasswordHash: hash(t, "305000111"), Role: entity.RoleFarmer},
		"admin":     {ID: "u-a", Username: "admin", PasswordHash: hash(t, "admin123"), Role: entity.RoleAdmin},
	}
	bs := brigadiers{"u-b": {Brigadier: entity.Brigadier{ID: "b-1", UserID: "u-b"}}}
	fs := farmers{"u-f": {ID: "f-1", UserID: "u-f"}}
	cfg := auth.JWTConfig{Secret: "s3cret", ExpMinutes: 10, Issuer: "navbahor"}
	uc := auth.NewAuthUseCase(us, bs, fs, cfg)
	ctx := context.Background()

	res, err := uc.Login(ctx, dto.LoginRequest{Username: " jasur ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "b-1", res.User.BrigadierID)
	id, err := jwt.Parse(cfg.Secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: "u-b", Role: "BRIGADIER", BrigadierID: "b-1"}, id)

	res, err = uc.Login(ctx, dto.LoginRequest{Username: "305000111", Password: "305000111"})
	require.NoError(t, err)
	assert.Equal(t, "f-1", res.User.FarmerID)

	res, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Empty(t, res.User.BrigadierID)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
