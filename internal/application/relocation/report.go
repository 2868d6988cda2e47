package relocation

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
)

// ReportLine reubicación con los nombres de sus maestros, lista para imprimir o exportar.
type ReportLine struct {
	Relocation    *entity.Relocation
	ProductName   string
	UomSymbol     string
	EmployeeName  string
	WarehouseName string
	FromName      string
	ToName        string
}

// SlipGenerator genera el comprobante PDF de una reubicación.
type SlipGenerator interface {
	GenerateSlip(ctx context.Context, line ReportLine) ([]byte, error)
}

// SheetExporter genera una hoja de cálculo con un listado de reubicaciones.
type SheetExporter interface {
	ExportRelocations(ctx context.Context, lines []ReportLine) ([]byte, error)
}

// ReportUseCase comprobante PDF y exportación XLSX de reubicaciones.
type ReportUseCase struct {
	repo         repository.RelocationRepository
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
	uomRepo      repository.UomRepository
	employeeRepo repository.EmployeeRepository
	slip         SlipGenerator
	sheet        SheetExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	repo repository.RelocationRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	uomRepo repository.UomRepository,
	employeeRepo repository.EmployeeRepository,
	slip SlipGenerator,
	sheet SheetExporter,
) *ReportUseCase {
	return &ReportUseCase{
		repo:         repo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		uomRepo:      uomRepo,
		employeeRepo: employeeRepo,
		slip:         slip,
		sheet:        sheet,
	}
}

// Slip genera el PDF de una reubicación de la empresa del actor.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound si la reubicación no existe o es de otra empresa.
func (uc *ReportUseCase) Slip(ctx context.Context, actor Actor, id string) (pdfBytes []byte, filename string, err error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener reubicación: %w", err)
	}
	if r == nil || r.CompanyID != actor.CompanyID {
		return nil, "", domain.ErrNotFound
	}
	lines, err := uc.enrich(ctx, []*entity.Relocation{r})
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.slip.GenerateSlip(ctx, lines[0])
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("reubicacion_%s.pdf", r.ID), nil
}

// Export genera el XLSX con las reubicaciones de la empresa (todas, o solo las del estado dado).
func (uc *ReportUseCase) Export(ctx context.Context, actor Actor, state string) (data []byte, filename string, err error) {
	list, err := uc.repo.List(ctx, repository.RelocationFilter{CompanyID: actor.CompanyID, State: state})
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: listar reubicaciones: %w", err)
	}
	lines, err := uc.enrich(ctx, list)
	if err != nil {
		return nil, "", err
	}
	data, err = uc.sheet.ExportRelocations(ctx, lines)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: generación fallida: %w", err)
	}
	name := "reubicaciones.xlsx"
	if state != "" {
		name = "reubicaciones_" + state + ".xlsx"
	}
	return data, name, nil
}

// enrich resuelve los nombres de maestros con una consulta por tipo; un maestro ausente deja su ID.
func (uc *ReportUseCase) enrich(ctx context.Context, rs []*entity.Relocation) ([]ReportLine, error) {
	var locationIDs, productIDs []string
	for _, r := range rs {
		locationIDs = append(locationIDs, r.WarehouseID, r.FromLocationID, r.ToLocationID)
		productIDs = append(productIDs, r.ProductID)
	}
	locations, err := uc.locationRepo.GetByIDs(ctx, uniqueIDs(locationIDs))
	if err != nil {
		return nil, fmt.Errorf("reporte: ubicaciones: %w", err)
	}
	products, err := uc.productRepo.GetByIDs(ctx, uniqueIDs(productIDs))
	if err != nil {
		return nil, fmt.Errorf("reporte: productos: %w", err)
	}

	uoms := make(map[string]string)
	employees := make(map[string]string)
	lines := make([]ReportLine, 0, len(rs))
	for _, r := range rs {
		line := ReportLine{
			Relocation:    r,
			ProductName:   r.ProductID,
			WarehouseName: locationName(locations, r.WarehouseID),
			FromName:      locationName(locations, r.FromLocationID),
			ToName:        locationName(locations, r.ToLocationID),
		}
		if p := products[r.ProductID]; p != nil {
			line.ProductName = p.RecName()
		}

		symbol, ok := uoms[r.UomID]
		if !ok {
			symbol = r.UomID
			uom, err := uc.uomRepo.GetByID(ctx, r.UomID)
			if err != nil {
				return nil, fmt.Errorf("reporte: unidad: %w", err)
			}
			if uom != nil {
				symbol = uom.Symbol
			}
			uoms[r.UomID] = symbol
		}
		line.UomSymbol = symbol

		name, ok := employees[r.EmployeeID]
		if !ok {
			name = r.EmployeeID
			emp, err := uc.employeeRepo.GetByID(ctx, r.EmployeeID)
			if err != nil {
				return nil, fmt.Errorf("reporte: empleado: %w", err)
			}
			if emp != nil {
				name = emp.Name
			}
			employees[r.EmployeeID] = name
		}
		line.EmployeeName = name

		lines = append(lines, line)
	}
	return lines, nil
}

func locationName(locations map[string]*entity.Location, id string) string {
	if l := locations[id]; l != nil {
		return l.Name
	}
	return id
}
