package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newShopFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "shop-id",
		Usage:   "Shop the seeded rows belong to",
		Value:   "demo-shop",
		EnvVars: []string{"SEED_SHOP_ID"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with catalog, order and cost data",
		Commands: []*cli.Command{
			{
				Name:   "catalog",
				Usage:  "Seed product variants from product_variants.csv",
				Flags:  []cli.Flag{newDBURLFlag(), newShopFlag(), newDataDirFlag()},
				Action: runSeed(seedCatalog),
			},
			{
				Name:   "orders",
				Usage:  "Seed order line items from order_line_items.csv",
				Flags:  []cli.Flag{newDBURLFlag(), newShopFlag(), newDataDirFlag()},
				Action: runSeed(seedOrders),
			},
			{
				Name:   "costs",
				Usage:  "Seed variant costs from variant_costs.csv",
				Flags:  []cli.Flag{newDBURLFlag(), newShopFlag(), newDataDirFlag()},
				Action: runSeed(seedCosts),
			},
			{
				Name:   "all",
				Usage:  "Seed catalog, orders and costs",
				Flags:  []cli.Flag{newDBURLFlag(), newShopFlag(), newDataDirFlag()},
				Action: runSeed(seedCatalog, seedOrders, seedCosts),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type seedFunc func(ctx context.Context, tx *sql.Tx, shopID, dataDir string) error

// runSeed opens the database and runs each step in its own transaction so a
// failed step rolls back without undoing the previous ones.
func runSeed(steps ...seedFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, err := sql.Open("pgx", c.String("db-url"))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		ctx := context.Background()
		shopID := c.String("shop-id")
		dataDir := c.String("data-dir")

		log.Println("Starting database seeding...")

		for _, step := range steps {
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to begin transaction: %w", err)
			}

			if err := step(ctx, tx, shopID, dataDir); err != nil {
				tx.Rollback()
				return err
			}

			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit transaction: %w", err)
			}
		}

		log.Println("Database seeding completed successfully!")
		return nil
	}
}

func seedCatalog(ctx context.Context, tx *sql.Tx, shopID, dataDir string) error {
	path := filepath.Join(dataDir, "product_variants.csv")
	log.Printf("Seeding product_variants from %s\n", path)

	const query = `
        INSERT INTO product_variants (
            shop_id, variant_id, product_id, title, variant_title, sku,
            barcode, vendor, product_type, inventory_qty, price,
            compare_at_price, created_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (shop_id, variant_id)
        DO UPDATE SET
            title = EXCLUDED.title,
            variant_title = EXCLUDED.variant_title,
            sku = EXCLUDED.sku,
            barcode = EXCLUDED.barcode,
            vendor = EXCLUDED.vendor,
            product_type = EXCLUDED.product_type,
            inventory_qty = EXCLUDED.inventory_qty,
            price = EXCLUDED.price,
            compare_at_price = EXCLUDED.compare_at_price
    `

	return seedFromCSV(ctx, tx, path, query, "product_variants", func(get func(string) string) ([]interface{}, error) {
		variantID, err := strconv.ParseInt(get("variant_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid variant_id %q: %w", get("variant_id"), err)
		}
		productID, err := strconv.ParseInt(get("product_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id %q: %w", get("product_id"), err)
		}
		qty, err := strconv.Atoi(get("inventory_qty"))
		if err != nil {
			return nil, fmt.Errorf("invalid inventory_qty %q: %w", get("inventory_qty"), err)
		}
		price, err := strconv.ParseFloat(get("price"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", get("price"), err)
		}
		compareAt, err := parseNullableFloat(get("compare_at_price"))
		if err != nil {
			return nil, err
		}
		createdAt, err := parseTimestamp(get("created_at"))
		if err != nil {
			return nil, err
		}

		return []interface{}{
			shopID, variantID, productID, get("title"), get("variant_title"),
			nullIfEmpty(get("sku")), nullIfEmpty(get("barcode")),
			nullIfEmpty(get("vendor")), nullIfEmpty(get("product_type")),
			qty, price, compareAt, createdAt,
		}, nil
	})
}

func seedOrders(ctx context.Context, tx *sql.Tx, shopID, dataDir string) error {
	path := filepath.Join(dataDir, "order_line_items.csv")
	log.Printf("Seeding order_line_items from %s\n", path)

	const query = `
        INSERT INTO order_line_items (shop_id, order_id, variant_id, quantity, price, ordered_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT DO NOTHING
    `

	return seedFromCSV(ctx, tx, path, query, "order_line_items", func(get func(string) string) ([]interface{}, error) {
		orderID, err := strconv.ParseInt(get("order_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid order_id %q: %w", get("order_id"), err)
		}
		variantID, err := strconv.ParseInt(get("variant_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid variant_id %q: %w", get("variant_id"), err)
		}
		quantity, err := strconv.Atoi(get("quantity"))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", get("quantity"), err)
		}
		price, err := strconv.ParseFloat(get("price"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", get("price"), err)
		}
		orderedAt, err := parseTimestamp(get("ordered_at"))
		if err != nil {
			return nil, err
		}

		return []interface{}{shopID, orderID, variantID, quantity, price, orderedAt}, nil
	})
}

func seedCosts(ctx context.Context, tx *sql.Tx, shopID, dataDir string) error {
	path := filepath.Join(dataDir, "variant_costs.csv")
	log.Printf("Seeding variant_costs from %s\n", path)

	const query = `
        INSERT INTO variant_costs (shop_id, variant_id, cost_per_item, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (shop_id, variant_id)
        DO UPDATE SET cost_per_item = EXCLUDED.cost_per_item, updated_at = NOW()
    `

	return seedFromCSV(ctx, tx, path, query, "variant_costs", func(get func(string) string) ([]interface{}, error) {
		variantID, err := strconv.ParseInt(get("variant_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid variant_id %q: %w", get("variant_id"), err)
		}
		cost, err := strconv.ParseFloat(get("cost_per_item"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cost_per_item %q: %w", get("cost_per_item"), err)
		}

		return []interface{}{shopID, variantID, cost}, nil
	})
}

// seedFromCSV streams a CSV file through a prepared statement. mapRow turns a
// header-keyed accessor into the statement arguments.
func seedFromCSV(ctx context.Context, tx *sql.Tx, path, query, table string, mapRow func(get func(string) string) ([]interface{}, error)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare %s statement: %w", table, err)
	}
	defer stmt.Close()

	rowCount := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		get := func(column string) string {
			idx, ok := index[column]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		args, err := mapRow(get)
		if err != nil {
			return fmt.Errorf("row %d of %s: %w", rowCount+2, path, err)
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}

		rowCount++
		if rowCount%5000 == 0 {
			log.Printf("Seeded %d %s rows...", rowCount, table)
		}
	}

	log.Printf("Successfully seeded %s (%d records)\n", table, rowCount)
	return nil
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseNullableFloat(value string) (sql.NullFloat64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return sql.NullFloat64{}, nil
	}

	cleaned := strings.ReplaceAll(value, ",", "")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return sql.NullFloat64{}, fmt.Errorf("invalid float value %s: %w", value, err)
	}

	return sql.NullFloat64{Float64: num, Valid: true}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
