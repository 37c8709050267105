package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestIsWriteStatement(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{name: "select", sql: "SELECT id FROM t", want: false},
		{name: "select lower", sql: "select 1", want: false},
		{name: "with cte", sql: "WITH x AS (SELECT 1) SELECT * FROM x", want: false},
		{name: "insert", sql: "INSERT INTO t VALUES ($1)", want: true},
		{name: "insert lower", sql: "insert into t values ($1)", want: true},
		{name: "leading whitespace", sql: "   \n\tUPDATE t SET a = $1", want: true},
		{name: "delete", sql: "DELETE FROM t WHERE id = $1", want: true},
		{name: "create", sql: "CREATE TABLE t (id BIGINT)", want: true},
		{name: "drop", sql: "DROP TABLE t", want: true},
		{name: "alter", sql: "ALTER TABLE t ADD COLUMN x INT", want: true},
		{name: "truncate", sql: "TRUNCATE t", want: true},
		{name: "keyword as identifier prefix", sql: "SELECT deleted_rows FROM t", want: false},
		{name: "column named update", sql: "UPDATED_AT_QUERY", want: false},
		{name: "empty", sql: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWriteStatement(tt.sql); got != tt.want {
				t.Fatalf("IsWriteStatement(%q) = %v, want %v", tt.sql, got, tt.want)
			}
		})
	}
}

func TestRoute(t *testing.T) {
	// пулы различаем по указателям, без реального подключения
	primary, replica := new(pgxpool.Pool), new(pgxpool.Pool)
	r := &PGRepo{primary: primary, replica: replica}

	if got := r.route("SELECT 1", false); got != replica {
		t.Fatal("read must hit replica when configured")
	}
	if got := r.route("INSERT INTO t VALUES (1)", false); got != primary {
		t.Fatal("write must hit primary")
	}
	// форс primary — read-your-writes
	if got := r.route("SELECT 1", true); got != primary {
		t.Fatal("forced read must hit primary")
	}

	noReplica := &PGRepo{primary: primary}
	if got := noReplica.route("SELECT 1", false); got != primary {
		t.Fatal("read without replica must hit primary")
	}
}
