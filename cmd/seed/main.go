// seed crea datos de demostración: un distribuidor, dos repartidores, un cliente
// y el catálogo básico de botellones. Pensado para entornos de desarrollo;
// es idempotente por email/nombre (ON CONFLICT DO NOTHING).
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_*).
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/aqua-delivery/internal/domain/entity"
	"github.com/tu-usuario/aqua-delivery/internal/infrastructure/postgres"
	"github.com/tu-usuario/aqua-delivery/pkg/config"
	"github.com/tu-usuario/aqua-delivery/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	name    string
	email   string
	role    string
	phone   string
	address string
}

type seedProduct struct {
	name        string
	description string
	price       string
}

var demoUsers = []seedUser{
	{"Aqua Distribuciones", "distribuidor@demo.local", entity.RoleDistributor, "555-0100", "Bodega Central, Calle 10 #4-20"},
	{"Pedro Ruiz", "repartidor1@demo.local", entity.RoleWorker, "555-0101", ""},
	{"Luisa Mora", "repartidor2@demo.local", entity.RoleWorker, "555-0102", ""},
	{"Cliente Demo", "cliente@demo.local", entity.RoleCustomer, "555-0200", "Cra 7 #12-34, Apto 301"},
}

// Catálogo inicial de botellones.
var demoProducts = []seedProduct{
	{"Standard Water Jar (20L)", "Pure drinking water in 20-liter jar. Perfect for home use.", "15.99"},
	{"Premium Water Jar (20L)", "Enhanced mineral water with balanced pH. Premium quality for health-conscious customers.", "18.99"},
	{"Small Water Jar (10L)", "Compact 10-liter jar, perfect for small households or office use.", "9.99"},
}

const demoPassword = "demo12345"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password demo")
	}

	now := time.Now()
	for _, u := range demoUsers {
		_, err := pool.Exec(ctx, `
			INSERT INTO users (id, name, email, password_hash, phone, address, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			ON CONFLICT (email) DO NOTHING`,
			uuid.New().String(), u.name, u.email, string(hash), u.phone, u.address, u.role, now,
		)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("insertar usuario demo")
		}
		log.Info().Str("email", u.email).Str("role", u.role).Msg("usuario demo")
	}

	for _, p := range demoProducts {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("precio inválido")
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO products (id, name, description, price, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, '', $5, $5)
			ON CONFLICT (name) DO NOTHING`,
			uuid.New().String(), p.name, p.description, price, now,
		)
		if err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("insertar producto demo")
		}
		log.Info().Str("product", p.name).Msg("producto demo")
	}

	log.Info().Msg("seed completado")
}
