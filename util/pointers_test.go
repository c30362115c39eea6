package util

import "testing"

func TestPtrDeref(t *testing.T) {
	p := Ptr(7)
	if *p != 7 {
		t.Errorf("*Ptr(7) = %d", *p)
	}
	if got := Deref(p); got != 7 {
		t.Errorf("Deref = %d, want 7", got)
	}

	var nilString *string
	if got := Deref(nilString); got != "" {
		t.Errorf("Deref(nil) = %q, want empty", got)
	}
	if got := Deref(Ptr(true)); !got {
		t.Error("Deref(Ptr(true)) = false")
	}
}
