package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-relocation/internal/application/dto"
	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
)

// ConfigurationUseCase lectura y edición de la configuración de stock.
type ConfigurationUseCase struct {
	repo         repository.StockConfigurationRepository
	locationRepo repository.LocationRepository
}

// NewConfigurationUseCase construye el caso de uso.
func NewConfigurationUseCase(repo repository.StockConfigurationRepository, locationRepo repository.LocationRepository) *ConfigurationUseCase {
	return &ConfigurationUseCase{repo: repo, locationRepo: locationRepo}
}

// Get devuelve la configuración actual (vacía si nunca se guardó).
func (uc *ConfigurationUseCase) Get(ctx context.Context) (*dto.StockConfigurationDTO, error) {
	cfg, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &dto.StockConfigurationDTO{}, nil
	}
	return &dto.StockConfigurationDTO{ToRelocationLocationID: cfg.ToRelocationLocationID}, nil
}

// Save guarda la ubicación destino por defecto. Debe ser una ubicación de almacenamiento
// (ni bodega ni vista); vacío la quita.
func (uc *ConfigurationUseCase) Save(ctx context.Context, in dto.StockConfigurationDTO) (*dto.StockConfigurationDTO, error) {
	if in.ToRelocationLocationID != "" {
		loc, err := uc.locationRepo.GetByID(ctx, in.ToRelocationLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, in.ToRelocationLocationID)
		}
		if !loc.CanHoldRelocation() {
			return nil, fmt.Errorf("%w: %s es de tipo %s", domain.ErrInvalidLocation, loc.Name, loc.Type)
		}
	}
	cfg := &entity.StockConfiguration{ToRelocationLocationID: in.ToRelocationLocationID}
	if err := uc.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return &in, nil
}
