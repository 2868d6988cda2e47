package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-relocation/internal/application/dto"
)

// ConfigurationService configuración de stock (implementado por *usecase.ConfigurationUseCase).
type ConfigurationService interface {
	Get(ctx context.Context) (*dto.StockConfigurationDTO, error)
	Save(ctx context.Context, in dto.StockConfigurationDTO) (*dto.StockConfigurationDTO, error)
}

// ConfigurationHandler maneja la configuración de stock (protegido).
type ConfigurationHandler struct {
	uc ConfigurationService
}

// NewConfigurationHandler construye el handler.
func NewConfigurationHandler(uc ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockConfigurationDTO
// @Router       /api/stock/configuration [get]
func (h *ConfigurationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar la configuración de stock (admin)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockConfigurationDTO  true  "Ubicación destino por defecto"
// @Success      200   {object}  dto.StockConfigurationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/stock/configuration [put]
func (h *ConfigurationHandler) Update(c *fiber.Ctx) error {
	var in dto.StockConfigurationDTO
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
