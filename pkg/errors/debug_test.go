package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpCollectsChain(t *testing.T) {
	err := fmt.Errorf("save cart: %w", Wrap(CodeDependency, fmt.Errorf("disk full"), "persist"))
	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %q", d.Code)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d: %v", len(d.Chain), d.Chain)
	}
}

func TestDumpExtractsPostgresDetails(t *testing.T) {
	pgxErr := &pgconn.PgError{Code: "23505", ConstraintName: "cart_records_pkey", TableName: "cart_records"}
	d := Dump(Wrap(CodeDependency, pgxErr, "upsert"))
	if d.PGCode != "23505" || d.PGConstraint != "cart_records_pkey" || d.PGTable != "cart_records" {
		t.Fatalf("unexpected pgx dump: %+v", d)
	}

	pqErr := &pq.Error{Code: "42P01", Table: "cart_records", Message: "relation does not exist"}
	d = Dump(Wrap(CodeDependency, pqErr, "load"))
	if d.PGCode != "42P01" || d.PGMessage != "relation does not exist" {
		t.Fatalf("unexpected pq dump: %+v", d)
	}

	if empty := Dump(nil); empty.TopMessage != "" {
		t.Fatalf("expected empty dump for nil error")
	}
}

func TestDumpFieldsSkipsEmptyPostgresEntries(t *testing.T) {
	fields := Dump(New(CodeValidation, "bad")).Fields()
	if _, ok := fields["pg_code"]; ok {
		t.Fatalf("pg_code should be omitted when empty")
	}
	if fields["error_code"] != CodeValidation {
		t.Fatalf("expected error_code, got %v", fields["error_code"])
	}
}
