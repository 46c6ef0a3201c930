package patternlock

import "testing"

func TestPointerInputApply(t *testing.T) {
	l, _ := newTestLock(t, nil)
	got := recordOutcomes(l)
	var in PointerInput

	a, b, c := screenOf(l, 0), screenOf(l, 4), screenOf(l, 8)
	frames := []struct {
		x, y    float64
		pressed bool
	}{
		{0, 0, false},
		{a.X, a.Y, true},
		{a.X, a.Y, true}, // stationary: no move
		{b.X, b.Y, true},
		{c.X, c.Y, true},
		{c.X, c.Y, false},
		{c.X, c.Y, false},
	}
	for i, f := range frames {
		if err := in.apply(l, f.x, f.y, f.pressed); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if i == 1 && !l.Tracking() {
			t.Fatal("press frame should start tracking")
		}
	}
	if len(*got) != 1 || (*got)[0].Password != "048" {
		t.Errorf("outcomes = %+v, want one for 048", *got)
	}
	if in.down {
		t.Error("input still down after release")
	}
}

func TestPointerInputSkipsWhileInjecting(t *testing.T) {
	l, _ := newTestLock(t, nil)
	var in PointerInput
	l.InjectGesture([]int{0, 1}, 1)
	if err := in.Update(l); err != nil {
		t.Fatal(err)
	}
	if in.down {
		t.Error("real input read while injecting")
	}
}
