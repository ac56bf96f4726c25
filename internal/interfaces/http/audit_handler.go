package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reservas-canchas/internal/application/audit"
	"github.com/jhoicas/reservas-canchas/internal/application/dto"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
)

// AuditHandler expone la bitácora: registro de acciones desde la UI, visor y exportación PDF.
type AuditHandler struct {
	svc    *audit.Service
	export *audit.ExportUseCase
}

// NewAuditHandler construye el handler de bitácora.
func NewAuditHandler(svc *audit.Service, export *audit.ExportUseCase) *AuditHandler {
	return &AuditHandler{svc: svc, export: export}
}

// RecordAction godoc
// @Summary      Registrar acción en bitácora
// @Description  Best-effort: responde 202 aunque la escritura en bitácora falle.
// @Tags         bitacora
// @Security     BearerAuth
// @Accept       json
// @Param        body  body  dto.RecordActionRequest  true  "tabla_afectada, tipo_accion, descripcion"
// @Success      202
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit/actions [post]
func (h *AuditHandler) RecordAction(c *fiber.Ctx) error {
	var in dto.RecordActionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := audit.ValidateAction(in.Action, in.Description); err != nil {
		return respondError(c, err)
	}
	u := actor(c)
	_ = h.svc.RecordAction(c.UserContext(), u.ID, u.Name, in.Table, in.Action, in.Description)
	return c.SendStatus(fiber.StatusAccepted)
}

// List godoc
// @Summary      Visor de bitácora
// @Tags         bitacora
// @Security     BearerAuth
// @Produce      json
// @Param        limit        query  int     false  "máximo de entradas (por defecto 50)"
// @Param        offset       query  int     false  "desplazamiento"
// @Param        usuario_id   query  string  false  "filtrar por usuario"
// @Param        tipo_accion  query  string  false  "filtrar por tipo de acción"
// @Success      200  {object}  dto.AuditListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := auditFilter(c)
	filter.Limit, filter.Offset = page.Limit, page.Offset
	entries, total, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toAuditEntryResponse(e))
	}
	return c.JSON(dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// ExportPDF godoc
// @Summary      Exportar bitácora en PDF
// @Tags         bitacora
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        usuario_id   query  string  false  "filtrar por usuario"
// @Param        tipo_accion  query  string  false  "filtrar por tipo de acción"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/audit/export.pdf [get]
func (h *AuditHandler) ExportPDF(c *fiber.Ctx) error {
	doc, err := h.export.ExportPDF(c.UserContext(), auditFilter(c), actor(c).Name)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="bitacora-%s.pdf"`, time.Now().Format("20060102-150405")))
	return c.Send(doc)
}

func auditFilter(c *fiber.Ctx) repository.AuditFilter {
	return repository.AuditFilter{
		UserID:     c.Query("usuario_id"),
		ActionKind: c.Query("tipo_accion"),
	}
}

func toAuditEntryResponse(e *entity.AuditEntry) dto.AuditEntryResponse {
	return dto.AuditEntryResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		UserName:      e.UserName,
		EntryTime:     e.EntryTime,
		ExitTime:      e.ExitTime,
		ActionKind:    e.ActionKind,
		TableAffected: e.TableAffected,
		Description:   e.Description,
		Browser:       e.Browser,
		ClientIP:      e.ClientIP,
		MachineName:   e.MachineName,
	}
}
