package infra

import (
	"fmt"

	"github.com/Michelteixeiradev/sistema-loja/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches for the
// constraints AutoMigrate cannot express on its own.
//
// TranslateError is on so unique and foreign-key violations surface as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated instead of raw pgx errors.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by the integration tests
// against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
		&model.StockMovement{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that backstops the FK delete rules on
// databases created before the constraint tags existed. Each statement is
// guarded so re-running on an already-patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"sale_items.product_id ON DELETE RESTRICT", `
DO $$ BEGIN
  IF NOT EXISTS (
    SELECT 1 FROM pg_constraint c
    JOIN pg_class t ON t.oid = c.conrelid
    WHERE t.relname = 'sale_items' AND c.conname = 'fk_sale_items_product'
      AND c.confdeltype = 'r'
  ) THEN
    IF EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_sale_items_product') THEN
      ALTER TABLE sale_items DROP CONSTRAINT fk_sale_items_product;
    END IF;
    ALTER TABLE sale_items
      ADD CONSTRAINT fk_sale_items_product
      FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE RESTRICT;
  END IF;
END $$`},
		{"stock_movements.product_id ON DELETE CASCADE", `
DO $$ BEGIN
  IF NOT EXISTS (
    SELECT 1 FROM pg_constraint c
    JOIN pg_class t ON t.oid = c.conrelid
    WHERE t.relname = 'stock_movements' AND c.conname = 'fk_stock_movements_product'
      AND c.confdeltype = 'c'
  ) THEN
    IF EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_stock_movements_product') THEN
      ALTER TABLE stock_movements DROP CONSTRAINT fk_stock_movements_product;
    END IF;
    ALTER TABLE stock_movements
      ADD CONSTRAINT fk_stock_movements_product
      FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
