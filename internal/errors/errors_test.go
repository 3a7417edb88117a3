package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(CategoryDOM, "E_DOM_DUPLICATE_ID", "duplicate node id")
	want := "E_DOM_DUPLICATE_ID: duplicate node id"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorStringWithCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CategoryLive, "E_LIVE_WRITE", "write failed")
	want := "E_LIVE_WRITE: write failed: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CategoryConfig, "E_CONFIG_READ", "read failed")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New(CategoryRender, "E_RENDER_UNSUPPORTED", "capability not supported")
	wrapped := fmt.Errorf("move child: %w",
		New(CategoryRender, "E_RENDER_UNSUPPORTED", "capability not supported"))
	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should match structured errors by code")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, CategoryDOM, "E_X", "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CategoryProtocol, "E_PROTO_DECODE", "bad frame"))
	var se *Error
	if !errors.As(err, &se) {
		t.Fatal("errors.As should find *Error")
	}
	if se.Category != CategoryProtocol {
		t.Errorf("Category = %q, want %q", se.Category, CategoryProtocol)
	}
}
