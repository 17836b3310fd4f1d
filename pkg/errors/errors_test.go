package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	if meta := MetadataFor(CodeTimeout); meta.HTTPStatus != http.StatusGatewayTimeout {
		t.Fatalf("expected 504 for timeout code, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(CodeDependency); meta.HTTPStatus != http.StatusBadGateway {
		t.Fatalf("expected 502 for dependency code, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(Code("BOGUS")); meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes should fall back to internal, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "catalog request failed")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("expected typed error through wrapping, got %v", typed)
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeValidation, nil, "bad input")
	if err.Unwrap() != nil {
		t.Fatal("expected no cause")
	}
	if err.Error() != "VALIDATION_ERROR: bad input" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestDumpWalksChain(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeTimeout, cause, "timed out")

	dump := Dump(err)
	if dump.Code != string(CodeTimeout) {
		t.Fatalf("unexpected code %q", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
	if dump.Chain[1] != "boom" {
		t.Fatalf("unexpected tail %q", dump.Chain[1])
	}
}
