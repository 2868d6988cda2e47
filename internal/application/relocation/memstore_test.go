package relocation_test

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-relocation/internal/application/relocation"
	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
	"github.com/jhoicas/stock-relocation/internal/domain/stock"
)

const testCompany = "co"

var (
	testNow   = time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)
	testToday = stock.BusinessDate(testNow)
)

func clock() time.Time { return testNow }

// memStore base en memoria con los mismos contratos que los repositorios PostgreSQL.
// Guarda valores (no punteros) para que los snapshots de la tx fake sean copias reales.
type memStore struct {
	locations   map[string]entity.Location
	products    map[string]entity.Product
	uoms        map[string]entity.Uom
	employees   map[string]entity.Employee
	users       map[string]entity.User
	relocations map[string]entity.Relocation
	moves       []entity.Move
	prodLocs    []entity.ProductLocation
	config      entity.StockConfiguration
	seq         int

	failMovesDo error
}

// newStore árbol de prueba:
//
//	wh (bodega) ── A, B (almacenamiento), V (vista)
//	wh2 (bodega) ── C (almacenamiento)
//	sup (proveedor)
func newStore() *memStore {
	s := &memStore{
		locations:   map[string]entity.Location{},
		products:    map[string]entity.Product{},
		uoms:        map[string]entity.Uom{},
		employees:   map[string]entity.Employee{},
		users:       map[string]entity.User{},
		relocations: map[string]entity.Relocation{},
	}
	for _, l := range []entity.Location{
		{ID: "wh", Name: "Bodega", Type: entity.LocationTypeWarehouse},
		{ID: "A", Name: "Estante A", Type: entity.LocationTypeStorage, ParentID: "wh"},
		{ID: "B", Name: "Estante B", Type: entity.LocationTypeStorage, ParentID: "wh"},
		{ID: "V", Name: "Vista", Type: entity.LocationTypeView, ParentID: "wh"},
		{ID: "wh2", Name: "Bodega 2", Type: entity.LocationTypeWarehouse},
		{ID: "C", Name: "Estante C", Type: entity.LocationTypeStorage, ParentID: "wh2"},
		{ID: "sup", Name: "Proveedores", Type: entity.LocationTypeSupplier},
	} {
		s.locations[l.ID] = l
	}
	s.uoms["u"] = entity.Uom{ID: "u", Name: "Unidad", Symbol: "u", Digits: 0}
	s.uoms["kg"] = entity.Uom{ID: "kg", Name: "Kilogramo", Symbol: "kg", Digits: 3}
	s.products["p1"] = entity.Product{
		ID: "p1", CompanyID: testCompany, Code: "P1", Name: "Tornillo", Type: entity.ProductTypeGoods,
		DefaultUomID: "u", CostPrice: decimal.NewFromInt(100), ListPrice: decimal.NewFromInt(150),
	}
	s.products["p2"] = entity.Product{
		ID: "p2", CompanyID: testCompany, Name: "Arroz", Type: entity.ProductTypeGoods, DefaultUomID: "kg",
	}
	s.products["svc"] = entity.Product{
		ID: "svc", CompanyID: testCompany, Name: "Instalación", Type: entity.ProductTypeService, DefaultUomID: "u",
	}
	s.employees["e1"] = entity.Employee{ID: "e1", CompanyID: testCompany, Name: "Ana"}
	s.employees["e-other"] = entity.Employee{ID: "e-other", CompanyID: "otra", Name: "Luis"}
	s.users["u1"] = entity.User{ID: "u1", CompanyID: testCompany, EmployeeID: "e1", StockWarehouseID: "wh", Role: entity.RoleBodeguero}
	return s
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return prefix + "-" + strconv.Itoa(s.seq)
}

// addStock deja qty de productID en locationID con un movimiento realizado de ayer.
func (s *memStore) addStock(locationID, productID, qty string) {
	s.moves = append(s.moves, entity.Move{
		ID:             s.nextID("seed"),
		ProductID:      productID,
		UomID:          s.products[productID].DefaultUomID,
		Quantity:       decimal.RequireFromString(qty),
		FromLocationID: "sup",
		ToLocationID:   locationID,
		State:          entity.MoveStateDone,
		EffectiveDate:  testToday.AddDate(0, 0, -1),
		CompanyID:      testCompany,
	})
}

func (s *memStore) addAssoc(productID, warehouseID, locationID string, sequence int) {
	s.prodLocs = append(s.prodLocs, entity.ProductLocation{
		ID: s.nextID("pl"), ProductID: productID, WarehouseID: warehouseID, LocationID: locationID, Sequence: sequence,
	})
}

func (s *memStore) addDraft(id, productID, from, to, qty string) {
	s.relocations[id] = entity.Relocation{
		ID:             id,
		PlannedDate:    testToday,
		EmployeeID:     "e1",
		WarehouseID:    "wh",
		FromLocationID: from,
		ToLocationID:   to,
		ProductID:      productID,
		Quantity:       decimal.RequireFromString(qty),
		UomID:          s.products[productID].DefaultUomID,
		CompanyID:      testCompany,
		State:          entity.RelocationStateDraft,
	}
}

func (s *memStore) assocLocations(productID string) []string {
	var out []string
	for _, pl := range s.prodLocs {
		if pl.ProductID == productID {
			out = append(out, pl.LocationID)
		}
	}
	sort.Strings(out)
	return out
}

func (s *memStore) movesOf(model string) []entity.Move {
	var out []entity.Move
	for _, m := range s.moves {
		if m.Origin.Model == model {
			out = append(out, m)
		}
	}
	return out
}

func (s *memStore) snapshot() *memStore {
	c := *s
	c.locations = copyMap(s.locations)
	c.products = copyMap(s.products)
	c.uoms = copyMap(s.uoms)
	c.employees = copyMap(s.employees)
	c.users = copyMap(s.users)
	c.relocations = copyMap(s.relocations)
	c.moves = append([]entity.Move(nil), s.moves...)
	c.prodLocs = append([]entity.ProductLocation(nil), s.prodLocs...)
	return &c
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// txRunner ejecuta fn sobre el mismo store y lo restaura si fn falla.
type txRunner struct {
	s    *memStore
	runs int
}

func (t *txRunner) Run(_ context.Context, fn func(relocation.TxRepos) error) error {
	t.runs++
	before := t.s.snapshot()
	if err := fn(t.s.repos()); err != nil {
		*t.s = *before
		return err
	}
	return nil
}

func (s *memStore) repos() relocation.TxRepos {
	return relocation.TxRepos{
		Relocations:      relocationRepo{s},
		Moves:            moveRepo{s},
		Stock:            stockRepo{s},
		ProductLocations: prodLocRepo{s},
		Locations:        locationRepo{s},
		Products:         productRepo{s},
	}
}

type locationRepo struct{ s *memStore }

func (r locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r locationRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Location, error) {
	out := make(map[string]*entity.Location, len(ids))
	for _, id := range ids {
		if l, _ := r.GetByID(ctx, id); l != nil {
			out[id] = l
		}
	}
	return out, nil
}

func (r locationRepo) ListByType(_ context.Context, locType string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.s.locations {
		if l.Type == locType {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type productRepo struct{ s *memStore }

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, _ := r.GetByID(ctx, id); p != nil {
			out[id] = p
		}
	}
	return out, nil
}

type uomRepo struct{ s *memStore }

func (r uomRepo) GetByID(_ context.Context, id string) (*entity.Uom, error) {
	u, ok := r.s.uoms[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type employeeRepo struct{ s *memStore }

func (r employeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	e, ok := r.s.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

type userRepo struct{ s *memStore }

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

type configRepo struct{ s *memStore }

func (r configRepo) Get(context.Context) (*entity.StockConfiguration, error) {
	c := r.s.config
	return &c, nil
}

func (r configRepo) Save(_ context.Context, cfg *entity.StockConfiguration) error {
	r.s.config = *cfg
	return nil
}

type stockRepo struct{ s *memStore }

func (r stockRepo) ProductsByLocation(_ context.Context, locationIDs, productIDs []string, date time.Time) (stock.Quantities, error) {
	locs := toSet(locationIDs)
	prods := toSet(productIDs)
	q := stock.Quantities{}
	for _, m := range r.s.moves {
		if m.State != entity.MoveStateDone || m.EffectiveDate.After(date) {
			continue
		}
		if _, ok := prods[m.ProductID]; !ok {
			continue
		}
		if _, ok := locs[m.ToLocationID]; ok {
			k := stock.Key{LocationID: m.ToLocationID, ProductID: m.ProductID}
			q[k] = q.Get(k).Add(m.Quantity)
		}
		if _, ok := locs[m.FromLocationID]; ok {
			k := stock.Key{LocationID: m.FromLocationID, ProductID: m.ProductID}
			q[k] = q.Get(k).Sub(m.Quantity)
		}
	}
	return q, nil
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

type prodLocRepo struct{ s *memStore }

func (r prodLocRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductLocation, error) {
	var out []*entity.ProductLocation
	for _, pl := range r.s.prodLocs {
		if pl.ProductID == productID {
			pl := pl
			out = append(out, &pl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LocationID != out[j].LocationID {
			return out[i].LocationID < out[j].LocationID
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out, nil
}

func (r prodLocRepo) Create(_ context.Context, pl *entity.ProductLocation) error {
	pl.ID = r.s.nextID("pl")
	r.s.prodLocs = append(r.s.prodLocs, *pl)
	return nil
}

func (r prodLocRepo) Delete(_ context.Context, ids []string) error {
	del := toSet(ids)
	kept := r.s.prodLocs[:0]
	for _, pl := range r.s.prodLocs {
		if _, ok := del[pl.ID]; !ok {
			kept = append(kept, pl)
		}
	}
	r.s.prodLocs = kept
	return nil
}

type moveRepo struct{ s *memStore }

func (r moveRepo) CreateBatch(_ context.Context, moves []*entity.Move) error {
	for _, m := range moves {
		if !m.Origin.Valid() {
			return domain.ErrInvalidOrigin
		}
		m.ID = r.s.nextID("move")
		r.s.moves = append(r.s.moves, *m)
	}
	return nil
}

func (r moveRepo) Do(_ context.Context, moves []*entity.Move, effectiveDate time.Time) error {
	if r.s.failMovesDo != nil {
		return r.s.failMovesDo
	}
	for _, m := range moves {
		for i := range r.s.moves {
			if r.s.moves[i].ID == m.ID {
				r.s.moves[i].State = entity.MoveStateDone
				r.s.moves[i].EffectiveDate = effectiveDate
			}
		}
		m.State = entity.MoveStateDone
		m.EffectiveDate = effectiveDate
	}
	return nil
}

func (r moveRepo) GetByID(_ context.Context, id string) (*entity.Move, error) {
	for _, m := range r.s.moves {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

type relocationRepo struct{ s *memStore }

func (r relocationRepo) Create(_ context.Context, rel *entity.Relocation) error {
	r.s.relocations[rel.ID] = *rel
	return nil
}

func (r relocationRepo) GetByID(_ context.Context, id string) (*entity.Relocation, error) {
	rel, ok := r.s.relocations[id]
	if !ok {
		return nil, nil
	}
	rel.UnitDigits = stock.UnitDigits(r.uom(rel.UomID))
	return &rel, nil
}

func (r relocationRepo) uom(id string) *entity.Uom {
	u, ok := r.s.uoms[id]
	if !ok {
		return nil
	}
	return &u
}

func (r relocationRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Relocation, error) {
	var out []*entity.Relocation
	for _, id := range ids {
		if rel, _ := r.GetByID(ctx, id); rel != nil {
			out = append(out, rel)
		}
	}
	sortDefault(out)
	return out, nil
}

func (r relocationRepo) List(ctx context.Context, f repository.RelocationFilter) ([]*entity.Relocation, error) {
	var out []*entity.Relocation
	for id, rel := range r.s.relocations {
		if rel.CompanyID != f.CompanyID || (f.State != "" && rel.State != f.State) {
			continue
		}
		got, _ := r.GetByID(ctx, id)
		out = append(out, got)
	}
	sortDefault(out)
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func sortDefault(rs []*entity.Relocation) {
	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if !a.PlannedDate.Equal(b.PlannedDate) {
			return a.PlannedDate.After(b.PlannedDate)
		}
		if a.WarehouseID != b.WarehouseID {
			return a.WarehouseID < b.WarehouseID
		}
		if a.FromLocationID != b.FromLocationID {
			return a.FromLocationID < b.FromLocationID
		}
		return a.ID < b.ID
	})
}

func (r relocationRepo) Update(_ context.Context, rel *entity.Relocation) error {
	cur, ok := r.s.relocations[rel.ID]
	if !ok || cur.State != entity.RelocationStateDraft {
		return domain.ErrNotDraft
	}
	r.s.relocations[rel.ID] = *rel
	return nil
}

func (r relocationRepo) SaveConfirmed(_ context.Context, rs []*entity.Relocation) error {
	for _, rel := range rs {
		cur := r.s.relocations[rel.ID]
		cur.MoveID = rel.MoveID
		cur.State = rel.State
		cur.UpdatedAt = rel.UpdatedAt
		r.s.relocations[rel.ID] = cur
	}
	return nil
}

func (r relocationRepo) Delete(_ context.Context, id string) error {
	cur, ok := r.s.relocations[id]
	if !ok || cur.State != entity.RelocationStateDraft {
		return domain.ErrNotDraft
	}
	delete(r.s.relocations, id)
	return nil
}
