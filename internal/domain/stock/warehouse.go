package stock

import (
	"context"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// LocationGetter obtiene una ubicación por ID; nil si no existe.
type LocationGetter func(ctx context.Context, id string) (*entity.Location, error)

// WarehouseOf recorre los ancestros de loc (incluida) hasta encontrar una ubicación de tipo bodega.
// Devuelve nil si se llega a la raíz, si falta un padre o si el árbol tiene un ciclo.
func WarehouseOf(ctx context.Context, loc *entity.Location, get LocationGetter) (*entity.Location, error) {
	visited := make(map[string]struct{})
	for cur := loc; cur != nil; {
		if cur.IsWarehouse() {
			return cur, nil
		}
		if _, seen := visited[cur.ID]; seen {
			return nil, nil
		}
		visited[cur.ID] = struct{}{}
		if cur.ParentID == "" {
			return nil, nil
		}
		parent, err := get(ctx, cur.ParentID)
		if err != nil {
			return nil, err
		}
		cur = parent
	}
	return nil, nil
}

// SameWarehouse compara dos bodegas resueltas; dos nil cuentan como la misma (ambas sin bodega).
func SameWarehouse(a, b *entity.Location) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID == b.ID
}
