package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/navbahor-erp/internal/application/dto"
	"github.com/jhoicas/navbahor-erp/internal/application/usecase"
)

// DirectoryHandler fermers, brigadieres y contornos.
type DirectoryHandler struct {
	uc *usecase.DirectoryUseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(uc *usecase.DirectoryUseCase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

// CreateFarmer godoc
// @Summary      Alta de fermer (usuario = INN)
// @Tags         directory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFarmerRequest  true  "Perfil"
// @Success      201   {object}  dto.FarmerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/farmers [post]
func (h *DirectoryHandler) CreateFarmer(c *fiber.Ctx) error {
	var in dto.CreateFarmerRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateFarmer(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFarmers godoc
// @Summary      Listar fermers
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FarmerResponse
// @Router       /api/farmers [get]
func (h *DirectoryHandler) ListFarmers(c *fiber.Ctx) error {
	out, err := h.uc.ListFarmers(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateBrigadier godoc
// @Summary      Alta de brigadier con su usuario
// @Tags         directory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBrigadierRequest  true  "Datos"
// @Success      201   {object}  dto.BrigadierResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brigadiers [post]
func (h *DirectoryHandler) CreateBrigadier(c *fiber.Ctx) error {
	var in dto.CreateBrigadierRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateBrigadier(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBrigadiers godoc
// @Summary      Listar brigadieres
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BrigadierResponse
// @Router       /api/brigadiers [get]
func (h *DirectoryHandler) ListBrigadiers(c *fiber.Ctx) error {
	out, err := h.uc.ListBrigadiers(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateContour godoc
// @Summary      Alta de contorno
// @Tags         directory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContourRequest  true  "Contorno"
// @Success      201   {object}  dto.ContourResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/contours [post]
func (h *DirectoryHandler) CreateContour(c *fiber.Ctx) error {
	var in dto.CreateContourRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateContour(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AssignContour godoc
// @Summary      Asignar o quitar el brigadier de un contorno
// @Tags         directory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del contorno"
// @Param        body  body  dto.AssignContourRequest  true  "Brigadier (vacío desasigna)"
// @Success      200   {object}  dto.ContourResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contours/{id}/brigadier [put]
func (h *DirectoryHandler) AssignContour(c *fiber.Ctx) error {
	var in dto.AssignContourRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AssignContour(c.UserContext(), GetActor(c), c.Params("id"), in.BrigadierID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListContours godoc
// @Summary      Listar contornos
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Param        brigadier_id  query  string  false  "Filtrar por brigadier"
// @Success      200  {array}  dto.ContourResponse
// @Router       /api/contours [get]
func (h *DirectoryHandler) ListContours(c *fiber.Ctx) error {
	out, err := h.uc.ListContours(c.UserContext(), GetActor(c), c.Query("brigadier_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetFarmer godoc
// @Summary      Ficha del fermer con contratos y asientos
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del fermer"
// @Success      200  {object}  dto.FarmerDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/farmers/{id} [get]
func (h *DirectoryHandler) GetFarmer(c *fiber.Ctx) error {
	out, err := h.uc.GetFarmer(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateFarmer godoc
// @Summary      Editar fermer (sincroniza su usuario)
// @Tags         directory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del fermer"
// @Param        body  body  dto.UpdateFarmerRequest  true  "Perfil"
// @Success      200   {object}  dto.FarmerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/farmers/{id} [put]
func (h *DirectoryHandler) UpdateFarmer(c *fiber.Ctx) error {
	var in dto.UpdateFarmerRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateFarmer(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateFarmerCredentials godoc
// @Summary      Nueva contraseña del fermer
// @Tags         directory
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                        true  "ID del fermer"
// @Param        body  body  dto.FarmerCredentialsRequest  true  "Contraseña"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/farmers/{id}/password [put]
func (h *DirectoryHandler) UpdateFarmerCredentials(c *fiber.Ctx) error {
	var in dto.FarmerCredentialsRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.UpdateFarmerCredentials(c.UserContext(), GetActor(c), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpsertContract godoc
// @Summary      Crear o actualizar el contrato anual del fermer
// @Tags         directory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del fermer"
// @Param        body  body  dto.UpsertContractRequest  true  "Año y plan"
// @Success      200   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/farmers/{id}/contracts [put]
func (h *DirectoryHandler) UpsertContract(c *fiber.Ctx) error {
	var in dto.UpsertContractRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpsertContract(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetBrigadier godoc
// @Summary      Ficha del brigadier con contornos y asientos
// @Tags         directory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del brigadier"
// @Success      200  {object}  dto.BrigadierDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brigadiers/{id} [get]
func (h *DirectoryHandler) GetBrigadier(c *fiber.Ctx) error {
	out, err := h.uc.GetBrigadier(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
