package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/CroosRRAF/ChefSync-sub005/internal/factories"
	"github.com/CroosRRAF/ChefSync-sub005/internal/models"
	"github.com/CroosRRAF/ChefSync-sub005/internal/repositories/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with generated addresses and supplier locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("database_url is not configured")
		}

		users, _ := cmd.Flags().GetInt("users")
		suppliers, _ := cmd.Flags().GetInt("suppliers")
		seed, _ := cmd.Flags().GetInt64("seed")

		ctx := context.Background()
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		return runSeed(ctx, pool, users, suppliers, seed)
	},
}

func init() {
	seedCmd.Flags().Int("users", 10, "Number of users to generate addresses for")
	seedCmd.Flags().Int("suppliers", 25, "Number of supplier locations to generate")
	seedCmd.Flags().Int64("seed", 42, "Random seed for generated data")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(ctx context.Context, pool *pgxpool.Pool, users, suppliers int, seed int64) error {
	factory := factories.New(models.GeoPoint{Lat: 6.9355, Lng: 79.8487}, 12.0, seed)

	supplierRepo := postgres.NewSupplierLocationRepository(pool)
	if err := supplierRepo.BulkCreate(ctx, factory.SupplierLocations(suppliers)); err != nil {
		return fmt.Errorf("seeding supplier locations: %w", err)
	}

	addressRepo := postgres.NewAddressRepository(pool)
	for i := 0; i < users; i++ {
		userID := cuid.New()

		// Two addresses per user; the first becomes the default.
		first := factory.Address(userID)
		if err := addressRepo.Create(ctx, first); err != nil {
			return fmt.Errorf("seeding address: %w", err)
		}
		if err := addressRepo.Create(ctx, factory.Address(userID)); err != nil {
			return fmt.Errorf("seeding address: %w", err)
		}
		if err := addressRepo.SetDefault(ctx, userID, first.ID); err != nil {
			return fmt.Errorf("setting default address: %w", err)
		}
	}

	addressCount, err := addressRepo.Count(ctx)
	if err != nil {
		return err
	}
	supplierCount, err := supplierRepo.Count(ctx)
	if err != nil {
		return err
	}

	log.Printf("Seed complete: %d addresses, %d supplier locations", addressCount, supplierCount)
	return nil
}
