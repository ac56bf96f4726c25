package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
)

// maxExportRows tope de filas por documento exportado.
const maxExportRows = 1000

// ReportGenerator genera la representación PDF de la bitácora.
type ReportGenerator interface {
	GenerateAuditPDF(ctx context.Context, entries []*entity.AuditEntry, generatedAt time.Time, generatedBy string) ([]byte, error)
}

// ExportUseCase exporta la bitácora como PDF para el visor administrativo.
type ExportUseCase struct {
	audit *Service
	gen   ReportGenerator
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(audit *Service, gen ReportGenerator) *ExportUseCase {
	return &ExportUseCase{audit: audit, gen: gen}
}

// ExportPDF genera el PDF con las entradas que cumplen filter (máximo maxExportRows).
func (uc *ExportUseCase) ExportPDF(ctx context.Context, filter repository.AuditFilter, generatedBy string) ([]byte, error) {
	filter.Limit = maxExportRows
	filter.Offset = 0
	entries, _, err := uc.audit.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("exportar bitácora: %w", err)
	}
	return uc.gen.GenerateAuditPDF(ctx, entries, uc.audit.now(), generatedBy)
}
