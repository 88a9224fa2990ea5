// createsuperuser crea el primer administrador (super_admin). La API no permite crearlo.
//
// Uso: go run ./cmd/createsuperuser -email admin@empresa.fr
// La contraseña se lee de STOCKIFY_SUPERUSER_PASSWORD.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/Stockify-api/internal/application/identity"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Stockify-api/pkg/config"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email del superusuario")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	password := os.Getenv("STOCKIFY_SUPERUSER_PASSWORD")
	if *email == "" || password == "" {
		log.Fatal().Msg("se requieren -email y STOCKIFY_SUPERUSER_PASSWORD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = logger.WithContext(ctx, log.Zerolog())

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", postgres.RedactedDSN(cfg.DB)).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	svc := identity.NewProvisioningService(postgres.NewUserRepository(pool), postgres.NewTxRunner(pool))
	user, err := svc.CreateSuperuser(ctx, *email, password, password)
	if err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("no se pudo crear el superusuario")
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("superusuario listo")
}
