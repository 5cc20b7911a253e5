package option

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before it executes.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// WithOrder orders by column/direction, but only when the column is in the
// allow-list. Unknown columns and directions fall back to created_at ASC.
func WithOrder(column, direction string, allowed map[string]bool) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		col := strings.TrimSpace(strings.ToLower(column))
		dir := strings.TrimSpace(strings.ToUpper(direction))
		if dir != "ASC" && dir != "DESC" {
			dir = "ASC"
		}
		if col == "" || !allowed[col] {
			col = "created_at"
		}
		return db.Order(fmt.Sprintf("%s %s", col, dir))
	})
}

func WithLimit(limit int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

func WithOffset(offset int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if offset <= 0 {
			return db
		}
		return db.Offset(offset)
	})
}
