package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableDefinitions(t *testing.T) {
	all := strings.Join(TableDefinitions, "\n")

	for _, table := range TableNames {
		assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS "+table+" ", "missing definition for %s", table)
	}

	for i, statement := range TableDefinitions {
		assert.NotEmpty(t, strings.TrimSpace(statement), "statement %d is empty", i)
		assert.NotContains(t, strings.ToUpper(statement), "REFERENCES", "statement %d declares a foreign key", i)
	}
}

func TestTableDefinitions_Constraints(t *testing.T) {
	all := strings.Join(TableDefinitions, "\n")

	assert.Contains(t, all, "slug VARCHAR(255) UNIQUE NOT NULL")
	assert.Contains(t, all, "UNIQUE (owner_id, token)")
}
