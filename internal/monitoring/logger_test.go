package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLoggerRedirect(t *testing.T) {
	defer SetLogger(nil)

	var captured string
	SetLogger(func(format string, v ...interface{}) {
		captured = fmt.Sprintf(format, v...)
	})

	Logf("kick %d scored %d", 3, 85)
	if captured != "kick 3 scored 85" {
		t.Errorf("captured = %q, want %q", captured, "kick 3 scored 85")
	}
}

func TestSetLoggerNilIsNoop(t *testing.T) {
	SetLogger(nil)
	// Must not panic.
	Logf("dropped %s", "frame")

	SetLogger(nil)
	if Logf == nil {
		t.Fatal("Logf should never be nil")
	}
}
