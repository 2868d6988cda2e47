package relocation

import (
	"context"
	"time"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
	"github.com/jhoicas/stock-relocation/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// DefaultsInput valores del contexto de ejecución que alimentan los defaults.
// EmployeeID, si viene, tiene prioridad sobre el empleado del usuario.
type DefaultsInput struct {
	CompanyID  string
	UserID     string
	EmployeeID string
}

// DefaultsUseCase calcula los valores por defecto de una reubicación nueva.
type DefaultsUseCase struct {
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
	config       ConfigurationReader
	now          func() time.Time
}

// NewDefaultsUseCase construye el caso de uso. now puede ser nil (time.Now).
func NewDefaultsUseCase(
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	config ConfigurationReader,
	now func() time.Time,
) *DefaultsUseCase {
	if now == nil {
		now = time.Now
	}
	return &DefaultsUseCase{
		userRepo:     userRepo,
		locationRepo: locationRepo,
		config:       config,
		now:          now,
	}
}

// Defaults devuelve una reubicación en borrador con los campos por defecto:
// estado, fecha planificada, empleado, bodega, ubicación destino, empresa y precisión.
func (uc *DefaultsUseCase) Defaults(ctx context.Context, in DefaultsInput) (*entity.Relocation, error) {
	r := &entity.Relocation{
		State:       entity.RelocationStateDraft,
		PlannedDate: stock.BusinessDate(uc.now()),
		CompanyID:   in.CompanyID,
		UnitDigits:  entity.DefaultUnitDigits,
		Quantity:    decimal.Zero,
	}

	var user *entity.User
	if in.UserID != "" {
		u, err := uc.userRepo.GetByID(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		user = u
	}

	r.EmployeeID = in.EmployeeID
	if r.EmployeeID == "" && user != nil {
		r.EmployeeID = user.EmployeeID
	}

	warehouseID, err := uc.defaultWarehouse(ctx, user)
	if err != nil {
		return nil, err
	}
	r.WarehouseID = warehouseID

	cfg, err := uc.config.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		r.ToLocationID = cfg.ToRelocationLocationID
	}
	return r, nil
}

// defaultWarehouse: bodega del usuario; si no tiene, la única bodega del sistema; si hay varias, vacío.
func (uc *DefaultsUseCase) defaultWarehouse(ctx context.Context, user *entity.User) (string, error) {
	if user != nil && user.StockWarehouseID != "" {
		return user.StockWarehouseID, nil
	}
	warehouses, err := uc.locationRepo.ListByType(ctx, entity.LocationTypeWarehouse)
	if err != nil {
		return "", err
	}
	if len(warehouses) == 1 {
		return warehouses[0].ID, nil
	}
	return "", nil
}
