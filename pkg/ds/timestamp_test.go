package ds

import "testing"

func TestTimestampFlagsResetAllIsCheap(t *testing.T) {
	f := NewTimestampFlags(5)
	f.Set(2)
	f.Set(3)
	if !f.IsSet(2) || !f.IsSet(3) {
		t.Fatal("expected 2 and 3 to be set")
	}
	if f.IsSet(0) {
		t.Fatal("expected 0 to be unset")
	}
	f.ResetAll()
	if f.IsSet(2) || f.IsSet(3) {
		t.Fatal("expected all flags cleared after ResetAll")
	}
	f.Set(2)
	if !f.IsSet(2) {
		t.Fatal("expected 2 settable again after reset")
	}
}
