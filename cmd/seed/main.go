// seed prepara la base de datos: aplica migraciones, crea administradores y carga el catálogo
// de tipos de cancha.
//
// Uso:
//
//	go run ./cmd/seed migrate
//	go run ./cmd/seed admin --nombre "Ana Pérez" --email ana@club.com --password 'S3creta99'
//	go run ./cmd/seed tipos
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/infrastructure/postgres"
	"github.com/jhoicas/reservas-canchas/pkg/config"
	"github.com/jhoicas/reservas-canchas/pkg/logger"
	"github.com/jhoicas/reservas-canchas/pkg/password"
)

func main() {
	var timeout = 30 * time.Second

	root := &cobra.Command{
		Use:          "seed",
		Short:        "Tareas de preparación de la base de datos de reservas",
		SilenceUsage: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", timeout, "Tiempo máximo por comando")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica los scripts de migrations/ (idempotentes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), timeout, func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
				applied, err := postgres.Migrate(ctx, pool)
				if err != nil {
					return err
				}
				log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
				return nil
			})
		},
	}

	var name, email, plain string
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Crea un usuario con rol admin (no asignable desde el registro público)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), timeout, func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
				users := postgres.NewUserRepository(pool)
				u, err := seedAdmin(ctx, users, password.NewHasher(0), name, email, plain)
				if err != nil {
					return err
				}
				log.Info().Str("user_id", u.ID).Str("email", u.Email).Msg("administrador creado")
				return nil
			})
		},
	}
	adminCmd.Flags().StringVar(&name, "nombre", "", "Nombre del administrador")
	adminCmd.Flags().StringVar(&email, "email", "", "Email del administrador")
	adminCmd.Flags().StringVar(&plain, "password", "", "Contraseña (mismas reglas que el registro)")
	_ = adminCmd.MarkFlagRequired("nombre")
	_ = adminCmd.MarkFlagRequired("email")
	_ = adminCmd.MarkFlagRequired("password")

	typesCmd := &cobra.Command{
		Use:   "tipos",
		Short: "Carga el catálogo inicial de tipos de cancha",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), timeout, func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
				ids, err := seedCourtTypes(ctx, postgres.NewCourtTypeRepository(pool), entity.DefaultCourtTypes)
				if err != nil {
					return err
				}
				log.Info().Int("tipos", len(ids)).Msg("catálogo de tipos cargado")
				return nil
			})
		},
	}

	root.AddCommand(migrateCmd, adminCmd, typesCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withPool carga la configuración, abre el pool y ejecuta fn con un contexto acotado.
func withPool(parent context.Context, timeout time.Duration, fn func(context.Context, *pgxpool.Pool, *logger.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	return fn(ctx, pool, log)
}
