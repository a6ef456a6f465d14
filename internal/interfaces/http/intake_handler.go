package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/application/intake"
)

// IntakeHandler maneja las solicitudes de abastecimiento de la cocina.
type IntakeHandler struct {
	uc *intake.RequestUseCase
}

// NewIntakeHandler construye el handler.
func NewIntakeHandler(uc *intake.RequestUseCase) *IntakeHandler {
	return &IntakeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateIntakeRequest  true  "product_name, quantity, unit, request_date (opcional)"
// @Success      201   {object}  dto.IntakeRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *IntakeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIntakeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         requests
// @Produce      json
// @Param        limit   query     int  false  "Máximo 100"
// @Param        offset  query     int  false  "Desplazamiento"
// @Success      200     {object}  dto.IntakeRequestListResponse
// @Router       /api/requests [get]
func (h *IntakeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.Normalize()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de una solicitud
// @Description  Al pasar a TESLİM ALINDI (RECEIVED) la cantidad entra al stock.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "ID de la solicitud"
// @Param        body  body      dto.ChangeIntakeStatusRequest  true  "status"
// @Success      200   {object}  dto.IntakeRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/status [patch]
func (h *IntakeHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeIntakeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ChangeStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
