package edgeid

import "testing"

func TestDictionaryAssignsDenseIdsAndRoundTrips(t *testing.T) {
	d := NewDictionary(4)
	id1 := d.GetEdgeID(10, 20)
	id2 := d.GetEdgeID(20, 10)
	if id1 == id2 {
		t.Fatal("expected distinct ids for opposite-direction edges")
	}
	u, v := d.GetEdgeFromID(id1)
	if u != 10 || v != 20 {
		t.Fatalf("GetEdgeFromID(%d) = (%d,%d), want (10,20)", id1, u, v)
	}
}

func TestDictionaryIsIdempotent(t *testing.T) {
	d := NewDictionary(4)
	id1 := d.GetEdgeID(1, 2)
	id2 := d.GetEdgeID(1, 2)
	if id1 != id2 {
		t.Fatalf("GetEdgeID not idempotent: %d != %d", id1, id2)
	}
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
}
