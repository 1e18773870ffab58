package model

import "testing"

func TestToID_Deterministic(t *testing.T) {
	a := ToID("ns::Widget")
	b := ToID("ns::Widget")
	if a != b {
		t.Errorf("Expected identical IDs for identical qualified names, got %d and %d", a, b)
	}

	c := ToID("ns::Gadget")
	if a == c {
		t.Errorf("Expected distinct IDs for distinct qualified names, both got %d", a)
	}
}

func TestToID_NeverReturnsNoID(t *testing.T) {
	for _, qn := range []string{"", "a", "ns::Widget", "::", "main"} {
		if id := ToID(qn); id == NoID {
			t.Errorf("ToID(%q) returned the reserved NoID sentinel", qn)
		}
	}
}

func TestPathID_NormalizesPath(t *testing.T) {
	a := PathID("src/widget/../widget/widget.cc")
	b := PathID("src/widget/widget.cc")
	if a != b {
		t.Errorf("Expected equal IDs for equivalent paths, got %d and %d", a, b)
	}
}
