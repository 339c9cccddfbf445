package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/Emman-24/backendFlorist/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type row struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:repobase?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestNewBaseStoresConnection(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	if base.db != db || base.Conn() != db {
		t.Fatalf("expected base db to match provided connection")
	}
}

func TestBaseDB_BindsContext(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	withCtx := base.DB(ctx)

	if withCtx == nil {
		t.Fatalf("expected non-nil DB when context provided")
	}
	if withCtx.Statement == nil {
		t.Fatalf("expected statement created after WithContext")
	}
	if withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", withCtx.Statement.Context)
	}

	withoutCtx := base.DB(nil)
	if withoutCtx != db {
		t.Fatalf("expected nil context to return raw connection")
	}
}

func TestPaginateAppliesOffsetAndLimit(t *testing.T) {
	db := newTestDB(t)
	if err := db.AutoMigrate(&row{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for i := 1; i <= 5; i++ {
		if err := db.Create(&row{ID: i, Name: fmt.Sprintf("r%d", i)}).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	var got []row
	if err := db.Scopes(Paginate(pagination.Params{Page: 1, Size: 2})).Order("id").Find(&got).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 4 {
		t.Fatalf("unexpected page %+v", got)
	}
}
