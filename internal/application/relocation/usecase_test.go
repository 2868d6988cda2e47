package relocation_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relocation/internal/application/dto"
	"github.com/jhoicas/stock-relocation/internal/application/relocation"
	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

var actor = relocation.Actor{CompanyID: testCompany, UserID: "u1"}

func newRelocations(s *memStore) *relocation.RelocationUseCase {
	return relocation.NewRelocationUseCase(
		relocationRepo{s}, locationRepo{s}, productRepo{s}, uomRepo{s}, employeeRepo{s},
		newDefaults(s), newForm(s),
	)
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreate_CompletaConDefaultsYExistencias(t *testing.T) {
	s := newStore()
	s.config.ToRelocationLocationID = "B"
	s.addAssoc("p1", "wh", "A", 10)
	s.addStock("A", "p1", "7")

	out, err := newRelocations(s).Create(context.Background(), actor, dto.CreateRelocationRequest{ProductID: "p1"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.RelocationStateDraft, out.State)
	assert.Equal(t, testToday.Format(dto.DateLayout), out.PlannedDate)
	assert.Equal(t, "e1", out.EmployeeID)
	assert.Equal(t, "wh", out.WarehouseID)
	assert.Equal(t, "A", out.FromLocationID)
	assert.Equal(t, "B", out.ToLocationID)
	assert.Equal(t, "u", out.UomID)
	assert.Equal(t, int32(0), out.UnitDigits)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(7)))

	stored := s.relocations[out.ID]
	assert.Equal(t, "u1", stored.CreatedBy)
	assert.Equal(t, testCompany, stored.CompanyID)
}

func TestCreate_RedondeaALaPrecisionDeLaUnidad(t *testing.T) {
	s := newStore()
	out, err := newRelocations(s).Create(context.Background(), actor, dto.CreateRelocationRequest{
		ProductID:      "p2",
		FromLocationID: "A",
		ToLocationID:   "B",
		PlannedDate:    "2026-11-02",
		Quantity:       decPtr("1.23456"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1.235", out.Quantity.String())
	assert.Equal(t, int32(3), out.UnitDigits)
	assert.Equal(t, "2026-11-02", out.PlannedDate)
}

func TestCreate_Validaciones(t *testing.T) {
	base := func() dto.CreateRelocationRequest {
		return dto.CreateRelocationRequest{
			ProductID: "p1", FromLocationID: "A", ToLocationID: "B", Quantity: decPtr("1"),
		}
	}
	cases := map[string]struct {
		mutate func(*dto.CreateRelocationRequest)
		want   error
	}{
		"origen vista": {func(in *dto.CreateRelocationRequest) { in.FromLocationID = "V" }, domain.ErrInvalidLocation},
		"origen igual a destino": {func(in *dto.CreateRelocationRequest) { in.ToLocationID = "A" }, domain.ErrInvalidLocation},
		"destino bodega": {func(in *dto.CreateRelocationRequest) { in.ToLocationID = "wh" }, domain.ErrInvalidLocation},
		"bodega que no es bodega": {func(in *dto.CreateRelocationRequest) { in.WarehouseID = "A" }, domain.ErrInvalidLocation},
		"ubicación inexistente": {func(in *dto.CreateRelocationRequest) { in.ToLocationID = "Z" }, domain.ErrNotFound},
		"producto servicio": {func(in *dto.CreateRelocationRequest) { in.ProductID = "svc" }, domain.ErrInvalidProduct},
		"cantidad cero": {func(in *dto.CreateRelocationRequest) { in.Quantity = decPtr("0") }, domain.ErrInvalidInput},
		"cantidad que redondea a cero": {func(in *dto.CreateRelocationRequest) { in.Quantity = decPtr("0.2") }, domain.ErrInvalidInput},
		"sin destino": {func(in *dto.CreateRelocationRequest) { in.ToLocationID = "" }, domain.ErrInvalidInput},
		"fecha inválida": {func(in *dto.CreateRelocationRequest) { in.PlannedDate = "19/10/2026" }, domain.ErrInvalidInput},
		"empleado de otra empresa": {func(in *dto.CreateRelocationRequest) { in.EmployeeID = "e-other" }, domain.ErrForbidden},
		"unidad inexistente": {func(in *dto.CreateRelocationRequest) { in.UomID = "lb" }, domain.ErrNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			in := base()
			tc.mutate(&in)
			_, err := newRelocations(s).Create(context.Background(), actor, in)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, s.relocations)
		})
	}
}

func TestCreate_ProductoDeOtraEmpresa(t *testing.T) {
	s := newStore()
	p := s.products["p1"]
	p.CompanyID = "otra"
	s.products["p1"] = p

	_, err := newRelocations(s).Create(context.Background(), actor, dto.CreateRelocationRequest{
		ProductID: "p1", FromLocationID: "A", ToLocationID: "B", Quantity: decPtr("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_CambioDeProductoRecalcula(t *testing.T) {
	s := newStore()
	s.addDraft("r1", "p1", "A", "B", "3")
	s.addAssoc("p2", "wh", "B", 10)
	s.addStock("B", "p2", "12.5")

	out, err := newRelocations(s).Update(context.Background(), actor, "r1", dto.UpdateRelocationRequest{
		ProductID:    strPtr("p2"),
		ToLocationID: strPtr("A"),
	})

	require.NoError(t, err)
	assert.Equal(t, "p2", out.ProductID)
	assert.Equal(t, "kg", out.UomID)
	assert.Equal(t, "B", out.FromLocationID)
	assert.Equal(t, "A", out.ToLocationID)
	assert.Equal(t, "12.5", out.Quantity.String())
	assert.Equal(t, "p2", s.relocations["r1"].ProductID)
}

func TestUpdate_RechazaOrigenIgualADestino(t *testing.T) {
	s := newStore()
	s.addDraft("r1", "p1", "A", "B", "3")

	_, err := newRelocations(s).Update(context.Background(), actor, "r1", dto.UpdateRelocationRequest{
		ToLocationID: strPtr("A"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
	assert.Equal(t, "B", s.relocations["r1"].ToLocationID)
}

func TestUpdate_CamposExplicitosGananAlRecalculo(t *testing.T) {
	s := newStore()
	s.addDraft("r1", "p1", "A", "B", "3")
	s.addAssoc("p2", "wh", "B", 10)
	s.addStock("B", "p2", "12.5")

	out, err := newRelocations(s).Update(context.Background(), actor, "r1", dto.UpdateRelocationRequest{
		ProductID:      strPtr("p2"),
		FromLocationID: strPtr("A"),
		ToLocationID:   strPtr("C"),
		Quantity:       decPtr("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A", out.FromLocationID)
	assert.Equal(t, "C", out.ToLocationID)
	assert.Equal(t, "2", out.Quantity.String())
}

func TestUpdateYDelete_SoloEnBorrador(t *testing.T) {
	s := newStore()
	s.addDraft("r1", "p1", "A", "B", "3")
	done := s.relocations["r1"]
	done.State = entity.RelocationStateDone
	done.MoveID = "m1"
	s.relocations["r1"] = done
	uc := newRelocations(s)

	_, err := uc.Update(context.Background(), actor, "r1", dto.UpdateRelocationRequest{Quantity: decPtr("1")})
	assert.ErrorIs(t, err, domain.ErrNotDraft)

	err = uc.Delete(context.Background(), actor, "r1")
	assert.ErrorIs(t, err, domain.ErrNotDraft)
	assert.Contains(t, s.relocations, "r1")
}

func TestDelete_Borrador(t *testing.T) {
	s := newStore()
	s.addDraft("r1", "p1", "A", "B", "3")
	uc := newRelocations(s)

	err := uc.Delete(context.Background(), relocation.Actor{CompanyID: "otra", UserID: "x"}, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(context.Background(), actor, "r1"))
	assert.NotContains(t, s.relocations, "r1")

	_, err = uc.GetByID(context.Background(), actor, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_OrdenPorDefectoYFiltro(t *testing.T) {
	s := newStore()
	s.addDraft("r3", "p1", "B", "A", "1")
	s.addDraft("r2", "p1", "A", "B", "1")
	s.addDraft("r1", "p1", "A", "B", "1")
	older := s.relocations["r1"]
	older.PlannedDate = testToday.AddDate(0, 0, -3)
	older.State = entity.RelocationStateDone
	s.relocations["r1"] = older
	uc := newRelocations(s)

	out, err := uc.List(context.Background(), actor, "", 0, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(out.Items))
	for _, it := range out.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"r2", "r3", "r1"}, ids, "fecha DESC, luego origen")

	out, err = uc.List(context.Background(), actor, entity.RelocationStateDone, 10, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "r1", out.Items[0].ID)

	_, err = uc.List(context.Background(), actor, "cancel", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
