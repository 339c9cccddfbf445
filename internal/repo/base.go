package repo

import (
	"context"
	"errors"

	"github.com/Emman-24/backendFlorist/pkg/pagination"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Conn returns the raw connection, used to derive transaction-bound repositories.
func (b Base) Conn() *gorm.DB {
	return b.db
}

// Paginate applies limit/offset for the normalized page params.
func Paginate(params pagination.Params) func(*gorm.DB) *gorm.DB {
	params = params.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset()).Limit(params.Size)
	}
}

// IsNotFound reports whether err is gorm's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
