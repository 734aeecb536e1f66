package specification

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestByChatSessionIDFiltersOnSessionColumn(t *testing.T) {
	id := uuid.New()
	spec := ByChatSessionID{SessionID: id}

	stmt := spec.Apply(dryRunDB(t).Table("chat_messages")).Find(&[]map[string]interface{}{}).Statement

	sql := stmt.SQL.String()
	if !strings.Contains(sql, "chat_session_id = ?") {
		t.Errorf("SQL = %q, want chat_session_id filter", sql)
	}
	if len(stmt.Vars) != 1 || stmt.Vars[0] != id {
		t.Errorf("Vars = %v, want [%s]", stmt.Vars, id)
	}
}

func TestByProductRefFiltersOnRefColumn(t *testing.T) {
	spec := ByProductRef{ProductRef: "15970"}

	stmt := spec.Apply(dryRunDB(t).Table("cart_items")).Find(&[]map[string]interface{}{}).Statement

	if !strings.Contains(stmt.SQL.String(), "product_ref = ?") {
		t.Errorf("SQL = %q, want product_ref filter", stmt.SQL.String())
	}
}
