package tools

import "testing"

func TestRangedClamps(t *testing.T) {
	r := NewRanged("brush_size", "", 1, 64, 200)
	if r.Value() != 1 {
		t.Fatalf("out of range initial value kept: %d", r.Value())
	}
	r.Set(100)
	if r.Value() != 64 {
		t.Fatalf("Set(100) = %d", r.Value())
	}
	if err := r.Parse(" -4 "); err != nil {
		t.Fatal(err)
	}
	if r.Value() != 1 {
		t.Fatalf("Parse(-4) = %d", r.Value())
	}
	if err := r.Parse("big"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPropertiesOrder(t *testing.T) {
	var p Properties
	p.Add(NewBool("b", "", true))
	p.Add(NewNumber("a", "", 3))
	p.Add(NewBool("b", "", false))
	all := p.All()
	if len(all) != 2 || all[0].Name() != "b" || all[1].Name() != "a" {
		t.Fatalf("order = %v", all)
	}
	if p.Bool("b") {
		t.Fatalf("re-added property not replaced")
	}
	if err := p.Set("a", "12"); err != nil {
		t.Fatal(err)
	}
	if got, _ := p.Get("a"); got.String() != "12" {
		t.Fatalf("a = %s", got)
	}
	if p.Bool("a") || p.Has("c") {
		t.Fatalf("lookup mismatch")
	}
}

func TestBoolToggle(t *testing.T) {
	b := NewBool("x", "", false)
	b.Toggle()
	if !b.On || b.String() != "true" {
		t.Fatalf("toggle")
	}
}
