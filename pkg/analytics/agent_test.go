package analytics

import (
	"strings"
	"testing"
)

func TestValidateReadOnly(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"plain select", "SELECT COUNT(*) FROM products WHERE deleted_at IS NULL", true},
		{"select with join", "select p.brand from products p where p.price_inr < 1000", true},
		{"trailing semicolon", "SELECT brand FROM products;", true},
		{"stacked statement", "SELECT 1; DROP TABLE products", false},
		{"delete", "DELETE FROM products", false},
		{"update", "UPDATE products SET brand = 'x'", false},
		{"insert disguised", "SELECT * FROM products; INSERT INTO products VALUES (1)", false},
		{"drop inside select", "SELECT * FROM products WHERE brand = 'a'; drop table carts", false},
		{"not sql at all", "I cannot generate that query", false},
		{"empty", "", false},
		{"column named like keyword", "SELECT created_at FROM products", true},
		{"keyword as substring", "SELECT * FROM products WHERE description ILIKE '%dropped shoulder%'", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateReadOnly(tt.query); got != tt.want {
				t.Errorf("ValidateReadOnly(%q) = %t, want %t", tt.query, got, tt.want)
			}
		})
	}
}

func TestFormatResultsSingleAggregate(t *testing.T) {
	got := FormatResults("Average price of Nike products", []map[string]interface{}{
		{"avg_price": 1499.5},
	})
	if !strings.Contains(got, "₹1499.50") {
		t.Errorf("got %q", got)
	}
}

func TestFormatResultsNullAggregate(t *testing.T) {
	got := FormatResults("Average price of Wrangler kurtas", []map[string]interface{}{
		{"avg_price": nil},
	})
	if !strings.Contains(got, "no data available") {
		t.Errorf("NULL aggregate must be an explicit answer, got %q", got)
	}
}

func TestFormatResultsIntegerAggregate(t *testing.T) {
	got := FormatResults("How many t-shirts", []map[string]interface{}{
		{"product_count": int64(42)},
	})
	if !strings.Contains(got, "42") {
		t.Errorf("got %q", got)
	}
}

func TestFormatResultsEmpty(t *testing.T) {
	got := FormatResults("anything", nil)
	if got != "No results found for your query." {
		t.Errorf("got %q", got)
	}
}

func TestFormatResultsRowListCapsAtTen(t *testing.T) {
	rows := make([]map[string]interface{}, 15)
	for i := range rows {
		rows[i] = map[string]interface{}{"brand": "nike", "price_inr": 999}
	}

	got := FormatResults("brands", rows)

	if !strings.Contains(got, "Found 15 results") {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(got, "(5 more rows)") {
		t.Errorf("overflow note missing: %q", got)
	}
}

func TestFormatResultsNullCell(t *testing.T) {
	got := FormatResults("brands", []map[string]interface{}{
		{"brand": nil, "color": "red"},
		{"brand": "puma", "color": "blue"},
	})
	if !strings.Contains(got, "n/a") {
		t.Errorf("NULL cell must render as n/a, got %q", got)
	}
}
