// seed puebla la base con un juego de datos de demostración: árbol de ubicaciones de una bodega,
// unidades, productos, un empleado, un usuario admin y existencias iniciales (movimientos realizados).
//
// Uso: go run ./cmd/seed [-password secreto] [-email admin@demo.local]
// Es idempotente: las filas con el mismo ID no se vuelven a insertar.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-relocation/pkg/config"
	"github.com/jhoicas/stock-relocation/pkg/logger"
)

const (
	companyID   = "demo-company"
	employeeID  = "demo-employee"
	warehouseID = "wh-main"
	inputID     = "wh-main-input"
	storageID   = "wh-main-storage"
	shelfAID    = "wh-main-shelf-a"
	shelfBID    = "wh-main-shelf-b"
	supplierID  = "supplier"
	unitUomID   = "uom-unit"
	kgUomID     = "uom-kg"
)

type seedLocation struct {
	id, name, code, typ, parent string
}

type seedProduct struct {
	id, code, name, uom string
	cost, price         decimal.Decimal
	initial             decimal.Decimal
	location            string
}

func main() {
	email := flag.String("email", "admin@demo.local", "email del usuario admin")
	password := flag.String("password", "admin1234", "password del usuario admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password")
	}

	b := &pgx.Batch{}
	queueLocations(b)
	queueMaster(b, *email, string(hash))
	queueProducts(b, time.Now())

	br := pool.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			log.Fatal().Err(err).Int("statement", i).Msg("seed")
		}
	}
	if err := br.Close(); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Str("email", *email).Int("statements", b.Len()).Msg("datos de demostración cargados")
}

func queueLocations(b *pgx.Batch) {
	locations := []seedLocation{
		{warehouseID, "Bodega principal", "WH", entity.LocationTypeWarehouse, ""},
		{inputID, "Recepción", "IN", entity.LocationTypeStorage, warehouseID},
		{storageID, "Almacenamiento", "STO", entity.LocationTypeView, warehouseID},
		{shelfAID, "Estante A", "STO-A", entity.LocationTypeStorage, storageID},
		{shelfBID, "Estante B", "STO-B", entity.LocationTypeStorage, storageID},
		{supplierID, "Proveedores", "SUP", entity.LocationTypeSupplier, ""},
	}
	for _, l := range locations {
		b.Queue(`
			INSERT INTO stock_locations (id, name, code, type, parent_id)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			ON CONFLICT (id) DO NOTHING`, l.id, l.name, l.code, l.typ, l.parent)
	}
	b.Queue(`
		INSERT INTO stock_configuration (id, to_relocation_location_id) VALUES (1, $1)
		ON CONFLICT (id) DO NOTHING`, shelfBID)
}

func queueMaster(b *pgx.Batch, email, hash string) {
	b.Queue(`INSERT INTO product_uoms (id, name, symbol, digits) VALUES ($1, 'Unidad', 'u', 0) ON CONFLICT (id) DO NOTHING`, unitUomID)
	b.Queue(`INSERT INTO product_uoms (id, name, symbol, digits) VALUES ($1, 'Kilogramo', 'kg', 3) ON CONFLICT (id) DO NOTHING`, kgUomID)
	b.Queue(`INSERT INTO employees (id, company_id, name) VALUES ($1, $2, 'Empleado demo') ON CONFLICT (id) DO NOTHING`,
		employeeID, companyID)
	b.Queue(`
		INSERT INTO users (id, company_id, email, password_hash, name, role, status, employee_id, stock_warehouse_id)
		VALUES ('demo-admin', $1, $2, $3, 'Administrador', $4, 'active', $5, $6)
		ON CONFLICT (id) DO NOTHING`, companyID, email, hash, entity.RoleAdmin, employeeID, warehouseID)
}

// queueProducts crea los productos, su asociación con la ubicación inicial y un movimiento
// realizado desde proveedores que deja las existencias de partida.
func queueProducts(b *pgx.Batch, now time.Time) {
	products := []seedProduct{
		{"prod-box", "BOX", "Caja de cartón", unitUomID, decimal.NewFromInt(800), decimal.NewFromInt(1500), decimal.NewFromInt(120), inputID},
		{"prod-tape", "TAPE", "Cinta de embalaje", unitUomID, decimal.NewFromInt(2500), decimal.NewFromInt(4200), decimal.NewFromInt(40), shelfAID},
		{"prod-rice", "RICE", "Arroz a granel", kgUomID, decimal.NewFromInt(3100), decimal.NewFromInt(4800), decimal.RequireFromString("250.500"), shelfAID},
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, p := range products {
		b.Queue(`
			INSERT INTO products (id, company_id, code, name, type, default_uom_id, cost_price, list_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			p.id, companyID, p.code, p.name, entity.ProductTypeGoods, p.uom, p.cost, p.price)
		b.Queue(`
			INSERT INTO stock_product_locations (id, product_id, warehouse_id, location_id, sequence)
			VALUES ($1, $2, $3, $4, 10)
			ON CONFLICT (id) DO NOTHING`, "pl-"+p.id, p.id, warehouseID, p.location)
		b.Queue(`
			INSERT INTO stock_moves (id, product_id, uom_id, quantity, from_location_id, to_location_id, state,
				planned_date, effective_date, company_id, cost_price, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $9, $10, $11)
			ON CONFLICT (id) DO NOTHING`,
			"seed-"+p.id, p.id, p.uom, p.initial, supplierID, p.location, entity.MoveStateDone,
			today, companyID, p.cost, p.price)
	}
}
