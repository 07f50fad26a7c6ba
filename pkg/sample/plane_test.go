package sample

import "testing"

func TestNewPlane(t *testing.T) {
	p := NewPlane(U16, 7, 3)
	if p.Stride != 14 {
		t.Errorf("stride = %d, want 14", p.Stride)
	}
	if len(p.Pix) != 42 {
		t.Errorf("len(Pix) = %d, want 42", len(p.Pix))
	}
	if len(p.Row(2)) != 14 {
		t.Errorf("len(Row(2)) = %d, want 14", len(p.Row(2)))
	}
}

func TestRowIsolation(t *testing.T) {
	p := NewPlane(U8, 4, 2)
	row := p.Row(1)
	for i := range row {
		row[i] = 0xFF
	}
	for i := 0; i < 4; i++ {
		if p.Pix[i] != 0 {
			t.Fatalf("writing row 1 touched row 0 at %d", i)
		}
	}
}

func TestCheckLayout(t *testing.T) {
	dims := [][2]int{{16, 8}, {8, 4}, {8, 4}}
	a := NewFrame(U8, dims)
	b := NewFrame(U16, dims) // kind differs, layout check must still pass
	if err := a.CheckLayout(b); err != nil {
		t.Errorf("matching layouts rejected: %v", err)
	}

	c := NewFrame(U8, [][2]int{{16, 8}, {8, 4}})
	if err := a.CheckLayout(c); err == nil {
		t.Error("plane count mismatch not detected")
	}

	d := NewFrame(U8, [][2]int{{16, 8}, {8, 4}, {8, 5}})
	if err := a.CheckLayout(d); err == nil {
		t.Error("dimension mismatch not detected")
	}
}
