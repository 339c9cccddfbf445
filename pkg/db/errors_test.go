package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "pgx unique", err: &pgconn.PgError{Code: "23505", ConstraintName: "uq_products_slug"}, want: true},
		{name: "pgx unique matching constraint", err: fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_products_slug"}), constraint: "uq_products_slug", want: true},
		{name: "pgx unique other constraint", err: &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}, constraint: "uq_products_slug", want: false},
		{name: "pgx fk violation", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "pq unique", err: &pq.Error{Code: "23505", Constraint: "uq_users_username"}, constraint: "uq_users_username", want: true},
		{name: "sqlite unique", err: errors.New("UNIQUE constraint failed: products.slug"), want: true},
		{name: "sqlite unique with column", err: errors.New("UNIQUE constraint failed: seo_urls.full_path"), constraint: "seo_urls.full_path", want: true},
		{name: "unrelated", err: errors.New("connection refused"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err, tc.constraint); got != tc.want {
				t.Fatalf("IsUniqueViolation() = %v, want %v", got, tc.want)
			}
		})
	}
}
