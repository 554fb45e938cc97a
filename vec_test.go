package gridtext

import "testing"

func TestVec2_Creation(t *testing.T) {
	tests := []struct {
		name string
		x, y float32
	}{
		{"zero", 0, 0},
		{"positive", 3, 4},
		{"negative", -1, -2},
		{"fractional", 1.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := V2(tt.x, tt.y)
			if v.X != tt.x || v.Y != tt.y {
				t.Errorf("V2(%v, %v) = %v, want (%v, %v)", tt.x, tt.y, v, tt.x, tt.y)
			}
		})
	}
}

func TestVec2_Ops(t *testing.T) {
	a, b := V2(1, 2), V2(3, -4)
	tests := []struct {
		name string
		got  Vec2
		want Vec2
	}{
		{"add", a.Add(b), V2(4, -2)},
		{"mul", a.Mul(b), V2(3, -8)},
		{"scale", b.Scale(0.5), V2(1.5, -2)},
		{"add zero", a.Add(Vec2{}), a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
