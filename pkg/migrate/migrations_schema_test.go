package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestCatalogMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_identity_and_catalog.sql")

	checks := []string{
		"CREATE TABLE users",
		"CREATE UNIQUE INDEX users_email_key ON users (lower(email))",
		"admin_verified",
		"admin_verified_by",
		"commission_rate",
		"pan_number",
		"billing_address",
		"last_login_at",
		"CREATE TABLE categories",
		"CREATE UNIQUE INDEX categories_slug_key ON categories (slug)",
		"CREATE TABLE products",
		"CREATE INDEX products_active_approved_idx ON products (is_active, approval_status, created_at DESC)",
		"CREATE TABLE bulk_pricing_tiers",
		"CREATE TABLE product_variants",
		"CREATE TABLE multi_seller_listings",
		"DROP TABLE IF EXISTS users",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCommerceMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_commerce.sql")

	checks := []string{
		"CREATE TABLE orders",
		"CREATE UNIQUE INDEX orders_order_number_key ON orders (order_number)",
		"CREATE TABLE carts",
		"CREATE TABLE cart_items",
		"CREATE UNIQUE INDEX cart_items_line_key",
		"CREATE TABLE wishlist_items",
		"CREATE TABLE coupons",
		"CREATE UNIQUE INDEX coupons_code_key ON coupons (lower(code))",
		"DROP TABLE IF EXISTS orders",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestQuestionsMigrationCarriesVoteColumns(t *testing.T) {
	content := readMigration(t, "*_reviews_questions_settings.sql")

	checks := []string{
		"CREATE TABLE reviews",
		"CREATE TABLE product_questions",
		"is_seller_answer",
		"helpful_count",
		"CREATE TABLE settings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
