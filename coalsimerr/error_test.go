package coalsimerr

import (
	"errors"
	"testing"
)

func TestCodeString(t *testing.T) {
	if got := CodeBadArgument.String(); got != "invalid argument" {
		t.Fatalf("got %q", got)
	}
	if got := Code(-999).String(); got == "" {
		t.Fatalf("expected non-empty fallback string")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeIO, "writing scenario", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find wrapped cause")
	}
	if err.Code != CodeIO {
		t.Fatalf("got code %v", err.Code)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(CodeIO, "msg", nil) != nil {
		t.Fatalf("Wrap(nil) must return nil")
	}
}
