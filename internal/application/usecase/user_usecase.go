package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/jhoicas/navbahor-erp/pkg/textnorm"
	"github.com/rs/zerolog"
)

// UserUseCase usuario autenticado y administración de cuentas de plantilla.
// Los usuarios FARMER y BRIGADIER nacen y se editan desde el directorio, junto a su perfil.
type UserUseCase struct {
	repo repository.UserRepository
	hash func(string) (string, error)
	log  zerolog.Logger
}

// NewUserUseCase construye el caso de uso. hash nil = bcrypt.
func NewUserUseCase(repo repository.UserRepository, hash func(string) (string, error), log zerolog.Logger) *UserUseCase {
	if hash == nil {
		hash = warehouse.DefaultConfig().HashPassword
	}
	return &UserUseCase{repo: repo, hash: hash, log: log}
}

// Me devuelve el usuario del actor con sus perfiles.
func (uc *UserUseCase) Me(ctx context.Context, actor access.Actor) (*dto.UserResponse, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	out := entityToUserResponse(user, actor.BrigadierID, actor.FarmerID)
	return &out, nil
}

// ListUsers todas las cuentas, las más recientes primero.
func (uc *UserUseCase) ListUsers(ctx context.Context, actor access.Actor) ([]dto.UserResponse, error) {
	if err := access.Require(actor, access.ManageUsers); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, entityToUserResponse(u, "", ""))
	}
	return out, nil
}

// CreateUser alta de cuenta de plantilla.
func (uc *UserUseCase) CreateUser(ctx context.Context, actor access.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := access.Require(actor, access.ManageUsers); err != nil {
		return nil, err
	}
	role, err := staffRole(actor, in.Role)
	if err != nil {
		return nil, err
	}
	username, fullName, err := userNames(in.Username, in.FullName)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: la contraseña requiere al menos 6 caracteres", domain.ErrInvalidInput)
	}
	hash, err := uc.hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el usuario %q ya existe", domain.ErrConflict, username)
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Str("role", string(role)).Msg("usuario creado")
	out := entityToUserResponse(u, "", "")
	return &out, nil
}

// UpdateUser edita una cuenta. Las cuentas de fermer y brigadier conservan su rol.
func (uc *UserUseCase) UpdateUser(ctx context.Context, actor access.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := access.Require(actor, access.ManageUsers); err != nil {
		return nil, err
	}
	u, err := uc.target(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	role := entity.Role(strings.ToUpper(strings.TrimSpace(in.Role)))
	if profileRole(u.Role) || profileRole(role) {
		if role != u.Role {
			return nil, fmt.Errorf("%w: el rol %s se gestiona desde el directorio", domain.ErrInvalidInput, u.Role)
		}
	} else if role, err = staffRole(actor, in.Role); err != nil {
		return nil, err
	}
	username, fullName, err := userNames(in.Username, in.FullName)
	if err != nil {
		return nil, err
	}
	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, fmt.Errorf("%w: la contraseña requiere al menos 6 caracteres", domain.ErrInvalidInput)
		}
		if u.PasswordHash, err = uc.hash(in.Password); err != nil {
			return nil, fmt.Errorf("hash de contraseña: %w", err)
		}
	}
	u.Username, u.FullName, u.Role, u.UpdatedAt = username, fullName, role, time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el usuario %q ya existe", domain.ErrConflict, username)
		}
		return nil, err
	}
	out := entityToUserResponse(u, "", "")
	return &out, nil
}

// DeleteUser borra una cuenta sin perfil ni asientos. Nadie se borra a sí mismo.
func (uc *UserUseCase) DeleteUser(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Require(actor, access.ManageUsers); err != nil {
		return err
	}
	if id == actor.UserID {
		return fmt.Errorf("%w: no se puede borrar la cuenta propia", domain.ErrInvalidInput)
	}
	if _, err := uc.target(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Str("by", actor.UserID).Msg("usuario borrado")
	return nil
}

// target usuario a modificar; solo SUPER_ADMIN toca cuentas SUPER_ADMIN.
func (uc *UserUseCase) target(ctx context.Context, actor access.Actor, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: usuario %q", domain.ErrInvalidInput, id)
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	if u.Role == entity.RoleSuperAdmin && actor.Role != entity.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: cuenta SUPER_ADMIN", domain.ErrForbidden)
	}
	return u, nil
}

func staffRole(actor access.Actor, raw string) (entity.Role, error) {
	role := entity.Role(strings.ToUpper(strings.TrimSpace(raw)))
	switch {
	case !role.Valid():
		return "", fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, raw)
	case profileRole(role):
		return "", fmt.Errorf("%w: el rol %s se gestiona desde el directorio", domain.ErrInvalidInput, role)
	case role == entity.RoleSuperAdmin && actor.Role != entity.RoleSuperAdmin:
		return "", fmt.Errorf("%w: solo SUPER_ADMIN asigna SUPER_ADMIN", domain.ErrForbidden)
	}
	return role, nil
}

func profileRole(r entity.Role) bool {
	return r == entity.RoleFarmer || r == entity.RoleBrigadier
}

func userNames(username, fullName string) (string, string, error) {
	username = strings.ToLower(textnorm.Code(username))
	fullName = textnorm.Name(fullName)
	if len(username) < 3 || fullName == "" {
		return "", "", fmt.Errorf("%w: usuario (mínimo 3) y nombre son obligatorios", domain.ErrInvalidInput)
	}
	return username, fullName, nil
}

func entityToUserResponse(u *entity.User, brigadierID, farmerID string) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        string(u.Role),
		BrigadierID: brigadierID,
		FarmerID:    farmerID,
	}
}
