package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required", detailsOK: true},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeIdempotency, status: http.StatusConflict, publicMsg: "idempotency key reused", detailsOK: true},
		{code: CodeUpstream, status: http.StatusBadGateway, publicMsg: "booking platform unavailable", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesChain(t *testing.T) {
	cause := stdErrors.New("socket closed")
	wrapped := Wrap(CodeUpstream, cause, "refresh cart")

	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("expected wrapped error to match cause")
	}
	if wrapped.Code() != CodeUpstream {
		t.Fatalf("expected upstream code, got %s", wrapped.Code())
	}

	dump := Dump(wrapped)
	if dump.TopMessage == "" || len(dump.Chain) < 2 {
		t.Fatalf("expected populated dump, got %+v", dump)
	}
	if dump.Code != CodeUpstream {
		t.Fatalf("expected dump code UPSTREAM_ERROR, got %s", dump.Code)
	}
}

func TestAsFindsTypedError(t *testing.T) {
	err := notFoundErr()
	if typed := As(err); typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected typed NOT_FOUND, got %v", typed)
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("expected nil for untyped error")
	}
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("IsCode should match NOT_FOUND")
	}
	if IsCode(err, CodeConflict) {
		t.Fatalf("IsCode should not match CONFLICT")
	}
}

func notFoundErr() error {
	return Wrap(CodeNotFound, stdErrors.New("row missing"), "load snapshot")
}

func TestDumpSurfacesDriverDetails(t *testing.T) {
	pgxErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "cart_snapshots_pkey",
		TableName:      "cart_snapshots",
		ColumnName:     "user_id",
		Detail:         "Key (user_id) already exists.",
		Message:        "duplicate key value violates unique constraint",
	}
	dump := Dump(Wrap(CodeDependency, fmt.Errorf("save snapshot: %w", pgxErr), "persist cart"))
	if dump.PGCode != "23505" || dump.PGTable != "cart_snapshots" || dump.PGColumn != "user_id" {
		t.Fatalf("pgx details not surfaced: %+v", dump)
	}
	if dump.PGConstraint != "cart_snapshots_pkey" {
		t.Fatalf("constraint not surfaced: %+v", dump)
	}

	pqErr := &pq.Error{
		Code:       "23502",
		Table:      "currency_preferences",
		Column:     "code",
		Constraint: "currency_preferences_code_check",
		Message:    "null value in column",
	}
	dump = Dump(fmt.Errorf("store preference: %w", pqErr))
	if dump.PGCode != "23502" || dump.PGTable != "currency_preferences" || dump.PGColumn != "code" {
		t.Fatalf("pq details not surfaced: %+v", dump)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "quantity must be positive").
		WithDetails(map[string]string{"quantity": "must be at least 1"})
	if err.Details() == nil {
		t.Fatalf("expected details to be attached")
	}
}
