package errors

import (
	goerrors "errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeValidation, "count must be positive")
	if !goerrors.Is(err, &Error{Code: CodeValidation}) {
		t.Fatal("expected code match")
	}
	if goerrors.Is(err, &Error{Code: CodeStorage}) {
		t.Fatal("expected no match across codes")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := goerrors.New("disk full")
	err := Wrap(CodeStorage, "take numbers", cause)
	if !goerrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "take numbers" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCodeOfWalksChain(t *testing.T) {
	base := Wrap(CodeStorage, "query failed", goerrors.New("io"))
	wrapped := fmt.Errorf("search: %w", base)
	if got := CodeOf(wrapped); got != CodeStorage {
		t.Fatalf("expected storage code, got %q", got)
	}
	if got := CodeOf(goerrors.New("plain")); got != CodeUnknown {
		t.Fatalf("expected unknown code, got %q", got)
	}
	if got := CodeOf(nil); got != CodeUnknown {
		t.Fatalf("expected unknown code for nil, got %q", got)
	}
}
