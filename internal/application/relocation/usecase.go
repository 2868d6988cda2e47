package relocation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-relocation/internal/application/dto"
	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
	"github.com/jhoicas/stock-relocation/internal/domain/stock"
)

// Actor usuario autenticado que ejecuta la operación.
type Actor struct {
	CompanyID string
	UserID    string
}

// RelocationUseCase ciclo de vida de una reubicación en borrador: crear, consultar, editar y borrar.
// La transición a done solo ocurre en ConfirmUseCase.
type RelocationUseCase struct {
	repo         repository.RelocationRepository
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
	uomRepo      repository.UomRepository
	employeeRepo repository.EmployeeRepository
	defaults     *DefaultsUseCase
	form         *FormUseCase
	now          func() time.Time
}

// NewRelocationUseCase construye el caso de uso.
func NewRelocationUseCase(
	repo repository.RelocationRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	uomRepo repository.UomRepository,
	employeeRepo repository.EmployeeRepository,
	defaults *DefaultsUseCase,
	form *FormUseCase,
) *RelocationUseCase {
	return &RelocationUseCase{
		repo:         repo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
		uomRepo:      uomRepo,
		employeeRepo: employeeRepo,
		defaults:     defaults,
		form:         form,
		now:          time.Now,
	}
}

// Create crea una reubicación en borrador. Los campos vacíos toman su valor por defecto;
// sin cantidad, se usan las existencias actuales del origen.
func (uc *RelocationUseCase) Create(ctx context.Context, actor Actor, in dto.CreateRelocationRequest) (*dto.RelocationResponse, error) {
	r, err := uc.defaults.Defaults(ctx, DefaultsInput{
		CompanyID:  actor.CompanyID,
		UserID:     actor.UserID,
		EmployeeID: in.EmployeeID,
	})
	if err != nil {
		return nil, err
	}
	if in.PlannedDate != "" {
		if r.PlannedDate, err = parseDate(in.PlannedDate); err != nil {
			return nil, err
		}
	}
	if in.WarehouseID != "" {
		r.WarehouseID = in.WarehouseID
	}
	if in.ToLocationID != "" {
		r.ToLocationID = in.ToLocationID
	}

	f := Form{
		ProductID:      in.ProductID,
		WarehouseID:    r.WarehouseID,
		FromLocationID: in.FromLocationID,
		UomID:          in.UomID,
	}
	if f.UomID == "" && f.ProductID != "" {
		product, err := uc.productRepo.GetByID(ctx, f.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			f.UomID = product.DefaultUomID
		}
	}
	if in.Quantity != nil {
		f.Quantity = *in.Quantity
	} else if f, err = uc.form.UpdateQuantity(ctx, f); err != nil {
		return nil, err
	}
	if err := uc.applyForm(ctx, r, f); err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, r); err != nil {
		return nil, err
	}

	now := uc.now()
	r.ID = uuid.New().String()
	r.CreatedBy = actor.UserID
	r.CreatedAt = now
	r.UpdatedAt = now
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRelocationResponse(r), nil
}

// GetByID obtiene una reubicación de la empresa del actor.
func (uc *RelocationUseCase) GetByID(ctx context.Context, actor Actor, id string) (*dto.RelocationResponse, error) {
	r, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toRelocationResponse(r), nil
}

// Entity obtiene la entidad de una reubicación de la empresa del actor (reportes).
func (uc *RelocationUseCase) Entity(ctx context.Context, actor Actor, id string) (*entity.Relocation, error) {
	return uc.get(ctx, actor, id)
}

// List lista reubicaciones de la empresa en el orden por defecto.
func (uc *RelocationUseCase) List(ctx context.Context, actor Actor, state string, limit, offset int) (*dto.RelocationListResponse, error) {
	if state != "" && state != entity.RelocationStateDraft && state != entity.RelocationStateDone {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, repository.RelocationFilter{
		CompanyID: actor.CompanyID,
		State:     state,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.RelocationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRelocationResponse(r))
	}
	return &dto.RelocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update modifica una reubicación en borrador. Cambiar el producto recalcula unidad,
// origen y cantidad salvo que vengan explícitos en la misma petición.
func (uc *RelocationUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateRelocationRequest) (*dto.RelocationResponse, error) {
	r, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !r.IsDraft() {
		return nil, domain.ErrNotDraft
	}

	if in.PlannedDate != nil {
		if r.PlannedDate, err = parseDate(*in.PlannedDate); err != nil {
			return nil, err
		}
	}
	if in.EmployeeID != nil {
		r.EmployeeID = *in.EmployeeID
	}
	if in.ToLocationID != nil {
		r.ToLocationID = *in.ToLocationID
	}
	if in.WarehouseID != nil {
		r.WarehouseID = *in.WarehouseID
	}

	f := Form{
		ProductID:      r.ProductID,
		WarehouseID:    r.WarehouseID,
		FromLocationID: r.FromLocationID,
		UomID:          r.UomID,
		Quantity:       r.Quantity,
	}
	if in.ProductID != nil && *in.ProductID != r.ProductID {
		f.ProductID = *in.ProductID
		if f, err = uc.form.OnChangeProduct(ctx, f); err != nil {
			return nil, err
		}
	}
	if in.FromLocationID != nil {
		f.FromLocationID = *in.FromLocationID
	}
	if in.UomID != nil {
		f.UomID = *in.UomID
	}
	if in.Quantity != nil {
		f.Quantity = *in.Quantity
	}
	if err := uc.applyForm(ctx, r, f); err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, r); err != nil {
		return nil, err
	}

	r.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toRelocationResponse(r), nil
}

// Delete borra una reubicación en borrador.
func (uc *RelocationUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	r, err := uc.get(ctx, actor, id)
	if err != nil {
		return err
	}
	if !r.IsDraft() {
		return domain.ErrNotDraft
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *RelocationUseCase) get(ctx context.Context, actor Actor, id string) (*entity.Relocation, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || r.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// applyForm copia el formulario a la reubicación y redondea la cantidad a la precisión de la unidad.
func (uc *RelocationUseCase) applyForm(ctx context.Context, r *entity.Relocation, f Form) error {
	digits, err := uc.form.UnitDigits(ctx, f.UomID)
	if err != nil {
		return err
	}
	r.ProductID = f.ProductID
	r.WarehouseID = f.WarehouseID
	r.FromLocationID = f.FromLocationID
	r.UomID = f.UomID
	r.UnitDigits = digits
	r.Quantity = stock.RoundQuantity(f.Quantity, digits)
	return nil
}

// validate aplica las reglas del documento: campos obligatorios, tipos de ubicación,
// producto almacenable, cantidad positiva y pertenencia a la empresa.
func (uc *RelocationUseCase) validate(ctx context.Context, r *entity.Relocation) error {
	if r.PlannedDate.IsZero() || r.EmployeeID == "" || r.WarehouseID == "" || r.FromLocationID == "" ||
		r.ToLocationID == "" || r.ProductID == "" || r.UomID == "" || r.CompanyID == "" {
		return fmt.Errorf("%w: faltan campos obligatorios", domain.ErrInvalidInput)
	}
	if r.FromLocationID == r.ToLocationID {
		return fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidLocation)
	}
	if !r.Quantity.IsPositive() {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}

	locs, err := uc.locationRepo.GetByIDs(ctx, []string{r.WarehouseID, r.FromLocationID, r.ToLocationID})
	if err != nil {
		return err
	}
	wh, from, to := locs[r.WarehouseID], locs[r.FromLocationID], locs[r.ToLocationID]
	if wh == nil || from == nil || to == nil {
		return fmt.Errorf("%w: ubicación", domain.ErrNotFound)
	}
	if !wh.IsWarehouse() {
		return fmt.Errorf("%w: %s no es una bodega", domain.ErrInvalidLocation, wh.Name)
	}
	if !from.CanHoldRelocation() || !to.CanHoldRelocation() {
		return fmt.Errorf("%w: origen y destino deben ser ubicaciones de almacenamiento", domain.ErrInvalidLocation)
	}

	product, err := uc.productRepo.GetByID(ctx, r.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	if product.CompanyID != "" && product.CompanyID != r.CompanyID {
		return domain.ErrForbidden
	}
	if !product.Stockable() {
		return domain.ErrInvalidProduct
	}

	uom, err := uc.uomRepo.GetByID(ctx, r.UomID)
	if err != nil {
		return err
	}
	if uom == nil {
		return fmt.Errorf("%w: unidad de medida", domain.ErrNotFound)
	}

	employee, err := uc.employeeRepo.GetByID(ctx, r.EmployeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return fmt.Errorf("%w: empleado", domain.ErrNotFound)
	}
	if employee.CompanyID != r.CompanyID {
		return domain.ErrForbidden
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}

func toRelocationResponse(r *entity.Relocation) *dto.RelocationResponse {
	if r == nil {
		return nil
	}
	return &dto.RelocationResponse{
		ID:             r.ID,
		PlannedDate:    r.PlannedDate.Format(dto.DateLayout),
		EmployeeID:     r.EmployeeID,
		WarehouseID:    r.WarehouseID,
		FromLocationID: r.FromLocationID,
		ToLocationID:   r.ToLocationID,
		ProductID:      r.ProductID,
		Quantity:       r.Quantity,
		UomID:          r.UomID,
		UnitDigits:     r.UnitDigits,
		CompanyID:      r.CompanyID,
		MoveID:         r.MoveID,
		State:          r.State,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToResponse expone el mapeo entidad → DTO para otras capas (defaults en HTTP).
func ToResponse(r *entity.Relocation) *dto.RelocationResponse {
	return toRelocationResponse(r)
}
