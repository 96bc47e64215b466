// seed carga los usuarios por defecto, las etapas agrotécnicas y el stock inicial del almacén.
// Es idempotente: lo que ya existe se deja como está.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/navbahor-erp/pkg/config"
	"github.com/jhoicas/navbahor-erp/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username, fullName, password string
	role                         entity.Role
}

var users = []seedUser{
	{"superadmin", "Bosh Boshqaruvchi", "superadmin123", entity.RoleSuperAdmin},
	{"admin", "Administrator Navbahor", "admin123", entity.RoleAdmin},
	{"direktor", "Cluster Direktori", "direktor123", entity.RoleDirector},
	{"omborchi", "Ombor Mudiri", "omborchi123", entity.RoleWarehouseman},
	{"agronom", "Bosh Agronom", "agronom123", entity.RoleAgronomist},
	{"monitor", "TV Monitor", "monitor123", entity.RoleMonitor},
}

type seedProduct struct {
	name, category string
	unit           entity.Unit
	opening        int64
}

var products = []seedProduct{
	{"Ammiakli selitra", "O'g'it", entity.UnitTON, 450},
	{"Karbamid", "O'g'it", entity.UnitTON, 280},
	{"Dizel yoqilg'isi", "Yoqilg'i", entity.UnitLITER, 15000},
}

var stages = []entity.WorkStage{
	{Name: "Shudgor", Order: 1, Description: "Yerni shudgorlash ishlari"},
	{Name: "Surg'at", Order: 2, Description: "Surg'at qilish"},
	{Name: "Chigit ekish", Order: 3, Description: "Chigit ekish mavsumi"},
	{Name: "1-suv", Order: 4, Description: "Birinchi sug'orish"},
	{Name: "1-o'g'itlash", Order: 5, Description: "Birinchi ozuqa berish"},
	{Name: "2-suv", Order: 6, Description: "Ikkinchi sug'orish"},
	{Name: "2-o'g'itlash", Order: 7, Description: "Ikkinchi ozuqa berish"},
	{Name: "3-suv", Order: 8, Description: "Uchinchi sug'orish"},
	{Name: "Defolyatsiya", Order: 9, Description: "Barglarni to'ktirish"},
	{Name: "Terim", Order: 10, Description: "Paxta terimi"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stageRepo := postgres.NewWorkStageRepository(pool)
	now := time.Now()

	var rootID string
	for _, u := range users {
		existing, err := userRepo.GetByUsername(ctx, u.username)
		if err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("buscar usuario")
		}
		if existing != nil {
			if u.role == entity.RoleSuperAdmin {
				rootID = existing.ID
			}
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		user := &entity.User{
			ID: uuid.NewString(), Username: u.username, PasswordHash: string(hash),
			FullName: u.fullName, Role: u.role, CreatedAt: now, UpdatedAt: now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("crear usuario")
		}
		if u.role == entity.RoleSuperAdmin {
			rootID = user.ID
		}
		log.Info().Str("username", u.username).Str("role", string(u.role)).Msg("usuario creado")
	}

	for i := range stages {
		s := stages[i]
		s.ID = uuid.NewString()
		err := stageRepo.Create(ctx, &s)
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("stage", s.Name).Msg("crear etapa")
		}
	}
	log.Info().Int("stages", len(stages)).Msg("etapas agrotécnicas listas")

	// El stock inicial entra como asiento IN para que el libro y la proyección coincidan.
	svc := warehouse.NewService(warehouse.Deps{
		TxRunner: postgres.NewTxRunner(pool),
		Readers: warehouse.Readers{
			Products:        productRepo,
			Transactions:    postgres.NewTransactionRepository(pool),
			BrigadierStocks: postgres.NewBrigadierStockRepository(pool),
			Waybills:        postgres.NewWaybillRepository(pool),
			Farmers:         postgres.NewFarmerRepository(pool),
			Brigadiers:      postgres.NewBrigadierRepository(pool),
			Contours:        postgres.NewContourRepository(pool),
		},
		Config: warehouse.Config{
			WarehouseName: cfg.Documents.WarehouseName,
			ShipperName:   cfg.Documents.ShipperName,
		},
		Log: log.Component("warehouse"),
	})
	root := access.Actor{UserID: rootID, Role: entity.RoleSuperAdmin}

	for _, p := range products {
		existing, err := productRepo.GetByName(ctx, p.name)
		if err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("buscar producto")
		}
		if existing != nil {
			continue
		}
		prod := &entity.Product{
			ID: uuid.NewString(), Name: p.name, Category: p.category, Unit: p.unit,
			CurrentStock: decimal.Zero, MinStockAlert: decimal.Zero, CreatedAt: now, UpdatedAt: now,
		}
		if err := productRepo.Create(ctx, prod); err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("crear producto")
		}
		res, err := svc.RecordTransaction(ctx, root, warehouse.RecordInput{
			Type:        entity.TransactionIN,
			Items:       []warehouse.LineItem{{ProductID: prod.ID, Amount: decimal.NewFromInt(p.opening)}},
			Description: "Boshlang'ich qoldiq",
		})
		if err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("stock inicial")
		}
		log.Info().Str("product", p.name).Str("waybill", res.WaybillNumber).Msg("producto con stock inicial")
	}
}
