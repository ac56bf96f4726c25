package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reservas-canchas/internal/application/dto"
	"github.com/jhoicas/reservas-canchas/internal/application/usecase"
)

// CourtHandler maneja canchas, tipos y horarios. La política por campo la aplica el caso de uso.
type CourtHandler struct {
	uc *usecase.CourtUseCase
}

// NewCourtHandler construye el handler de canchas.
func NewCourtHandler(uc *usecase.CourtUseCase) *CourtHandler {
	return &CourtHandler{uc: uc}
}

// List godoc
// @Summary      Listar canchas
// @Tags         canchas
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   dto.CourtResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/courts [get]
func (h *CourtHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cancha
// @Tags         canchas
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "ID de la cancha"
// @Success      200  {object}  dto.CourtResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/courts/{id} [get]
func (h *CourtHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.GetByID(c.UserContext(), actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Permissions godoc
// @Summary      Campos editables para el rol actual
// @Tags         canchas
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.PermissionsResponse
// @Router       /api/courts/permissions [get]
func (h *CourtHandler) Permissions(c *fiber.Ctx) error {
	return c.JSON(h.uc.Permissions(actor(c)))
}

// Create godoc
// @Summary      Crear cancha
// @Tags         canchas
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCourtRequest  true  "nombre, tipo_id"
// @Success      201   {object}  dto.CourtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/courts [post]
func (h *CourtHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCourtRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cancha (parcial)
// @Description  Cada campo presente debe ser editable por el rol; si alguno no lo es, no se aplica ninguno.
// @Tags         canchas
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la cancha"
// @Param        body  body  dto.UpdateCourtRequest  true  "nombre, disponible, tipo_id"
// @Success      200   {object}  dto.CourtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/courts/{id} [patch]
func (h *CourtHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateCourtRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), actor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetAvailability godoc
// @Summary      Cambiar disponibilidad
// @Tags         canchas
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la cancha"
// @Param        body  body  dto.AvailabilityRequest  true  "disponible"
// @Success      200   {object}  dto.CourtResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/courts/{id}/availability [put]
func (h *CourtHandler) SetAvailability(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Available == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "disponible es requerido"})
	}
	out, err := h.uc.SetAvailability(c.UserContext(), actor(c), id, *in.Available)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cancha
// @Tags         canchas
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la cancha"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/courts/{id} [delete]
func (h *CourtHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), actor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTypes godoc
// @Summary      Listar tipos de cancha
// @Tags         canchas
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.CourtTypeResponse
// @Router       /api/court-types [get]
func (h *CourtHandler) ListTypes(c *fiber.Ctx) error {
	out, err := h.uc.ListTypes(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddSchedule godoc
// @Summary      Agregar horario
// @Tags         canchas
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la cancha"
// @Param        body  body  dto.ScheduleRequest  true  "dia_semana, hora_inicio, hora_fin"
// @Success      201   {object}  dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/courts/{id}/schedules [post]
func (h *CourtHandler) AddSchedule(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.ScheduleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddSchedule(c.UserContext(), actor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteSchedule godoc
// @Summary      Eliminar horario
// @Tags         canchas
// @Security     BearerAuth
// @Param        id          path  int  true  "ID de la cancha"
// @Param        scheduleId  path  int  true  "ID del horario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/courts/{id}/schedules/{scheduleId} [delete]
func (h *CourtHandler) DeleteSchedule(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	scheduleID, ok := paramID(c, "scheduleId")
	if !ok {
		return invalidID(c, "scheduleId")
	}
	if err := h.uc.DeleteSchedule(c.UserContext(), actor(c), id, scheduleID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// paramID lee un parámetro de ruta numérico positivo.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: name + " inválido"})
}
