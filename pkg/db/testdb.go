package db

import (
	"fmt"
	"sync/atomic"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testSeq atomic.Int64

// Each test database gets its own name so parallel tests do not share state.
func testDialector() gorm.Dialector {
	n := testSeq.Add(1)
	return sqlite.Open(fmt.Sprintf("file:bazar_test_%d?mode=memory&cache=shared", n))
}
