package refine

import (
	"slices"
	"testing"
)

func TestUnit(t *testing.T) {
	if p := Unit(0); p.Cells() != 0 || !p.Discrete() {
		t.Errorf("Unit(0) = %d cells, discrete=%v", p.Cells(), p.Discrete())
	}
	p := Unit(3)
	if p.Cells() != 1 || p.Discrete() {
		t.Errorf("Unit(3) = %d cells, discrete=%v", p.Cells(), p.Discrete())
	}
}

func TestFromColors(t *testing.T) {
	p := FromColors([]Color{5, 2, 5, 9})
	if got, want := p.Colors(), []Color{1, 0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("Colors() = %v, want %v", got, want)
	}
	if p.Cells() != 3 {
		t.Errorf("Cells() = %d, want 3", p.Cells())
	}
	if got := p.Members(1); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("Members(1) = %v, want [0 2]", got)
	}
}

func TestIndividualize(t *testing.T) {
	p := FromColors([]Color{0, 1, 1, 1, 2})

	q := p.Individualize(2)
	if got, want := q.Colors(), []Color{0, 2, 1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Individualize(2) = %v, want %v", got, want)
	}
	if q.Cells() != 4 {
		t.Errorf("Cells() = %d, want 4", q.Cells())
	}
	if got := p.Colors(); !slices.Equal(got, []Color{0, 1, 1, 1, 2}) {
		t.Errorf("receiver mutated to %v", got)
	}

	same := p.Individualize(0)
	if !slices.Equal(same.Colors(), p.Colors()) {
		t.Errorf("individualizing a singleton changed the partition to %v", same.Colors())
	}
}

func TestTargetCell(t *testing.T) {
	tests := []struct {
		name   string
		colors []Color
		want   Color
		ok     bool
	}{
		{"smallest wins", []Color{0, 0, 0, 1, 1, 2}, 1, true},
		{"tie lowest color", []Color{0, 0, 1, 1, 1, 2, 2}, 0, true},
		{"discrete", []Color{0, 1, 2}, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := FromColors(tt.colors).TargetCell()
			if c != tt.want || ok != tt.ok {
				t.Errorf("TargetCell() = (%d, %v), want (%d, %v)", c, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestOrder(t *testing.T) {
	p := FromColors([]Color{2, 0, 1})
	if got := p.Order(); !slices.Equal(got, []int{1, 2, 0}) {
		t.Errorf("Order() = %v, want [1 2 0]", got)
	}
}
