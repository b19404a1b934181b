// Package testutil holds sqlmock helpers shared by the repository tests.
package testutil

import (
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/tidwall/gjson"
)

// NewMockDB opens a sqlmock database. When the test ends it fails on unmet
// expectations and closes the connection.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet database expectations: %v", err)
		}
		_ = db.Close()
	})
	return db, mock
}

// JSONField matches a JSON argument whose value at path equals want
type JSONField struct {
	Path string
	Want string
}

// Match implements sqlmock.Argument
func (f JSONField) Match(v driver.Value) bool {
	var raw []byte
	switch b := v.(type) {
	case []byte:
		raw = b
	case string:
		raw = []byte(b)
	default:
		return false
	}
	if !gjson.ValidBytes(raw) {
		return false
	}
	got := gjson.GetBytes(raw, f.Path)
	return got.Exists() && got.String() == f.Want
}
