package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/ativ97/battery-management/internal/database"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Warranty Database")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL SHOP DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all customers")
	fmt.Println("  - Delete all batteries")
	fmt.Println("  - Delete the entire exchange audit trail")
	fmt.Println("  - Delete the scrap, challan and archive tables")
	fmt.Println("  - Recreate the schema from scratch")
	fmt.Println()
	fmt.Print("Type 'RESET' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "RESET" {
		fmt.Println("Reset cancelled.")
		return
	}

	// Load environment variables
	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "warranty_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("Resetting database...")

	ctx := context.Background()

	tables := []string{
		"audit_scrap_batteries",
		"challan_batteries",
		"scrap_batteries",
		"exchanges",
		"batteries",
		"customers",
		"schema_migrations",
	}

	for _, table := range tables {
		_, err = pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table))
		if err != nil {
			log.Fatalf("Failed to drop %s: %v\n", table, err)
		}
		fmt.Printf("  dropped %s\n", table)
	}

	fmt.Println()
	fmt.Println("Recreating schema...")

	migrator := database.NewMigratorAt(pool, "migrations")
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to reapply migrations: %v\n", err)
	}

	fmt.Println("Done.")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
