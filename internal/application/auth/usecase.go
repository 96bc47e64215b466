package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/jhoicas/navbahor-erp/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login por usuario y contraseña.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	brigadierRepo repository.BrigadierRepository
	farmerRepo    repository.FarmerRepository
	jwtCfg        JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, brigadierRepo repository.BrigadierRepository, farmerRepo repository.FarmerRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, brigadierRepo: brigadierRepo, farmerRepo: farmerRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/contraseña y emite un JWT con el rol y el perfil vinculado.
// Usuario inexistente y contraseña errónea devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	id := jwt.Identity{UserID: user.ID, Role: string(user.Role)}
	switch user.Role {
	case entity.RoleBrigadier:
		b, err := uc.brigadierRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if b != nil {
			id.BrigadierID = b.ID
		}
	case entity.RoleFarmer:
		f, err := uc.farmerRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if f != nil {
			id.FarmerID = f.ID
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, id)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:          user.ID,
			Username:    user.Username,
			FullName:    user.FullName,
			Role:        string(user.Role),
			BrigadierID: id.BrigadierID,
			FarmerID:    id.FarmerID,
		},
	}, nil
}
