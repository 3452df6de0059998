package sqlwrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeQuery(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name          string
		query         string
		containsWrite bool
	}{
		{"simple select", "SELECT * FROM users", false},
		{"lowercase select", "select id, name from accounts where id = 1", false},
		{"select with join", "SELECT a.id FROM a JOIN b ON a.id = b.a_id", false},
		{"insert", "INSERT INTO users (name) VALUES ('bob')", true},
		{"lowercase insert", "insert into users values (1)", true},
		{"update", "UPDATE users SET name = 'x' WHERE id = 1", true},
		{"delete", "DELETE FROM users WHERE id = 1", true},
		{"merge", "MERGE INTO t USING s ON t.id = s.id WHEN MATCHED THEN UPDATE SET x = 1", true},
		{"truncate", "TRUNCATE TABLE users", true},
		{"create table", "CREATE TABLE t (id INT)", true},
		{"alter table", "ALTER TABLE t ADD COLUMN x INT", true},
		{"drop table", "DROP TABLE t", true},
		{"grant", "GRANT SELECT ON t TO role_x", true},
		{"insert inside string literal", "SELECT * FROM logs WHERE msg = 'INSERT INTO'", false},
		{"update inside line comment", "SELECT 1 -- UPDATE users\n", false},
		{"delete inside block comment", "SELECT 1 /* DELETE FROM users */", false},
		{"escaped quote then write word in string", "SELECT * FROM t WHERE s = 'it''s an UPDATE'", false},
		{"cte select", "WITH x AS (SELECT 1) SELECT * FROM x", false},
		{"select into column named delete", "SELECT deleted_at FROM users", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.AnalyzeQuery(tt.query)
			assert.Equal(t, tt.containsWrite, got.ContainsWrite, "query: %s", tt.query)
		})
	}
}

func TestAnalyzeQueryKeywords(t *testing.T) {
	d := NewDetector()

	a := d.AnalyzeQuery("INSERT INTO t SELECT * FROM s; DROP TABLE s")
	assert.True(t, a.ContainsWrite)
	assert.Equal(t, []string{"INSERT", "DROP"}, a.Keywords)
}

func TestIsWrite(t *testing.T) {
	d := NewDetector()
	assert.False(t, d.IsWrite("SELECT 1"))
	assert.True(t, d.IsWrite("DELETE FROM t"))
}
