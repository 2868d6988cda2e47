package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-relocation/internal/application/dto"
	"github.com/jhoicas/stock-relocation/internal/application/relocation"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RelocationService ciclo de vida de reubicaciones (implementado por *relocation.RelocationUseCase).
type RelocationService interface {
	Create(ctx context.Context, actor relocation.Actor, in dto.CreateRelocationRequest) (*dto.RelocationResponse, error)
	GetByID(ctx context.Context, actor relocation.Actor, id string) (*dto.RelocationResponse, error)
	List(ctx context.Context, actor relocation.Actor, state string, limit, offset int) (*dto.RelocationListResponse, error)
	Update(ctx context.Context, actor relocation.Actor, id string, in dto.UpdateRelocationRequest) (*dto.RelocationResponse, error)
	Delete(ctx context.Context, actor relocation.Actor, id string) error
}

// DefaultsService valores por defecto (implementado por *relocation.DefaultsUseCase).
type DefaultsService interface {
	Defaults(ctx context.Context, in relocation.DefaultsInput) (*entity.Relocation, error)
}

// FormService recálculos del formulario (implementado por *relocation.FormUseCase).
type FormService interface {
	OnChangeProduct(ctx context.Context, f relocation.Form) (relocation.Form, error)
	OnChangeWithQuantity(ctx context.Context, f relocation.Form) (decimal.Decimal, error)
}

// ConfirmService confirmación por lotes (implementado por *relocation.ConfirmUseCase).
type ConfirmService interface {
	Confirm(ctx context.Context, in relocation.ConfirmInput) (*relocation.ConfirmResult, error)
}

// ReportService comprobante PDF y exportación XLSX (implementado por *relocation.ReportUseCase).
type ReportService interface {
	Slip(ctx context.Context, actor relocation.Actor, id string) ([]byte, string, error)
	Export(ctx context.Context, actor relocation.Actor, state string) ([]byte, string, error)
}

// RelocationHandler maneja las peticiones HTTP de reubicaciones (protegido).
type RelocationHandler struct {
	relocations RelocationService
	defaults    DefaultsService
	form        FormService
	confirm     ConfirmService
	reports     ReportService
}

// NewRelocationHandler construye el handler.
func NewRelocationHandler(
	relocations RelocationService,
	defaults DefaultsService,
	form FormService,
	confirm ConfirmService,
	reports ReportService,
) *RelocationHandler {
	return &RelocationHandler{
		relocations: relocations,
		defaults:    defaults,
		form:        form,
		confirm:     confirm,
		reports:     reports,
	}
}

func actorOf(c *fiber.Ctx) (relocation.Actor, bool) {
	a := relocation.Actor{CompanyID: GetCompanyID(c), UserID: GetUserID(c)}
	return a, a.CompanyID != "" && a.UserID != ""
}

// Defaults godoc
// @Summary      Valores por defecto de una reubicación nueva
// @Tags         relocations
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  false  "Empleado responsable (prioridad sobre el del usuario)"
// @Success      200  {object}  dto.RelocationResponse
// @Router       /api/relocations/defaults [get]
func (h *RelocationHandler) Defaults(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	r, err := h.defaults.Defaults(c.UserContext(), relocation.DefaultsInput{
		CompanyID:  actor.CompanyID,
		UserID:     actor.UserID,
		EmployeeID: c.Query("employee_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(relocation.ToResponse(r))
}

// OnChangeProduct godoc
// @Summary      Recalcular unidad, origen y cantidad al cambiar el producto
// @Tags         relocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RelocationFormRequest  true  "Estado del formulario"
// @Success      200   {object}  dto.RelocationFormResponse
// @Router       /api/relocations/onchange/product [post]
func (h *RelocationHandler) OnChangeProduct(c *fiber.Ctx) error {
	var in dto.RelocationFormRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	f, err := h.form.OnChangeProduct(c.UserContext(), formOf(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RelocationFormResponse{
		UomID:          f.UomID,
		UnitDigits:     f.UnitDigits,
		FromLocationID: f.FromLocationID,
		Quantity:       f.Quantity,
	})
}

// OnChangeQuantity godoc
// @Summary      Existencias disponibles en el origen
// @Tags         relocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RelocationFormRequest  true  "Estado del formulario"
// @Success      200   {object}  dto.QuantityResponse
// @Router       /api/relocations/onchange/quantity [post]
func (h *RelocationHandler) OnChangeQuantity(c *fiber.Ctx) error {
	var in dto.RelocationFormRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	qty, err := h.form.OnChangeWithQuantity(c.UserContext(), formOf(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.QuantityResponse{Quantity: qty})
}

// Create godoc
// @Summary      Crear reubicación en borrador
// @Tags         relocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRelocationRequest  true  "Campos vacíos toman su valor por defecto"
// @Success      201   {object}  dto.RelocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/relocations [post]
func (h *RelocationHandler) Create(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateRelocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	out, err := h.relocations.Create(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar reubicaciones
// @Tags         relocations
// @Security     Bearer
// @Produce      json
// @Param        state   query  string  false  "draft | done"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.RelocationListResponse
// @Router       /api/relocations [get]
func (h *RelocationHandler) List(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize()
	out, err := h.relocations.List(c.UserContext(), actor, c.Query("state"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener reubicación por ID
// @Tags         relocations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reubicación"
// @Success      200  {object}  dto.RelocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/relocations/{id} [get]
func (h *RelocationHandler) GetByID(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.relocations.GetByID(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar reubicación en borrador
// @Tags         relocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la reubicación"
// @Param        body  body  dto.UpdateRelocationRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.RelocationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/relocations/{id} [put]
func (h *RelocationHandler) Update(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateRelocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.relocations.Update(c.UserContext(), actor, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar reubicación en borrador
// @Tags         relocations
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reubicación"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/relocations/{id} [delete]
func (h *RelocationHandler) Delete(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.relocations.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Confirm godoc
// @Summary      Confirmar reubicaciones
// @Description  Genera y realiza un movimiento por reubicación con existencias suficientes.
//
//	Las que no tienen existencias quedan en borrador y vuelven como warnings (HTTP 200).
//
// @Tags         relocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmRelocationsRequest  true  "IDs a confirmar"
// @Success      200   {object}  dto.ConfirmRelocationsResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/relocations/confirm [post]
func (h *RelocationHandler) Confirm(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ConfirmRelocationsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids es requerido"})
	}
	res, err := h.confirm.Confirm(c.UserContext(), relocation.ConfirmInput{
		CompanyID: actor.CompanyID,
		UserID:    actor.UserID,
		IDs:       in.IDs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toConfirmResponse(res))
}

// PDF godoc
// @Summary      Comprobante PDF de una reubicación
// @Tags         relocations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la reubicación"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/relocations/{id}/pdf [get]
func (h *RelocationHandler) PDF(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	data, filename, err := h.reports.Slip(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(data)
}

// Export godoc
// @Summary      Exportar reubicaciones a Excel
// @Tags         relocations
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        state  query  string  false  "draft | done"
// @Success      200  {file}  binary
// @Router       /api/relocations/export [get]
func (h *RelocationHandler) Export(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	data, filename, err := h.reports.Export(c.UserContext(), actor, c.Query("state"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

func formOf(in dto.RelocationFormRequest) relocation.Form {
	return relocation.Form{
		ProductID:      in.ProductID,
		WarehouseID:    in.WarehouseID,
		FromLocationID: in.FromLocationID,
		Quantity:       in.Quantity,
	}
}

func toConfirmResponse(res *relocation.ConfirmResult) dto.ConfirmRelocationsResponse {
	out := dto.ConfirmRelocationsResponse{
		Confirmed: make([]dto.ConfirmedRelocationDTO, 0, len(res.Confirmed)),
		Warnings:  make([]dto.RelocationWarningDTO, 0, len(res.Warnings)),
	}
	for _, c := range res.Confirmed {
		out.Confirmed = append(out.Confirmed, dto.ConfirmedRelocationDTO{RelocationID: c.RelocationID, MoveID: c.MoveID})
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, dto.RelocationWarningDTO{
			Key:          w.Key,
			RelocationID: w.RelocationID,
			ProductID:    w.ProductID,
			ProductName:  w.ProductName,
			LocationID:   w.LocationID,
			LocationName: w.LocationName,
			Available:    w.Available,
			Requested:    w.Requested,
			Message:      w.Message,
		})
	}
	return out
}
