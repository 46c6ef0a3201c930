package patternlock

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", Color{1, 1, 1, 1}},
		{"#000000", Color{0, 0, 0, 1}},
		{"ff000080", Color{1, 0, 0, 128.0 / 255}},
		{" #38a6fd ", Color{0x38 / 255.0, 0xa6 / 255.0, 0xfd / 255.0, 1}},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", tt.in, err)
			continue
		}
		if !approx(got.R, tt.want.R) || !approx(got.G, tt.want.G) ||
			!approx(got.B, tt.want.B) || !approx(got.A, tt.want.A) {
			t.Errorf("ParseHexColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#ff", "#ggg", "#12345"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) should fail", bad)
		}
	}
}

func TestColorHex(t *testing.T) {
	if got := MustParseHexColor("#aaa").Hex(); got != "#aaaaaa" {
		t.Errorf("Hex = %q, want #aaaaaa", got)
	}
	if got := MustParseHexColor("#11223344").Hex(); got != "#11223344" {
		t.Errorf("Hex = %q, want #11223344", got)
	}
}

func TestColorRGBAPremultiplied(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got := c.RGBA(); got != want {
		t.Errorf("RGBA = %v, want %v", got, want)
	}
	if got := ColorWhite.WithAlpha(0.25).A; got != 0.25 {
		t.Errorf("WithAlpha = %v, want 0.25", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"", ModeSet, true},
		{"set", ModeSet, true},
		{"Validate", ModeValidate, true},
		{"again", 0, false},
		{"confirm", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err == nil) != tt.ok || (tt.ok && got != tt.want) {
			t.Errorf("ParseMode(%q) = (%v, %v)", tt.in, got, err)
		}
	}
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{ModeSet: "set", ModeConfirm: "again", ModeValidate: "validate"} {
		if m.String() != want {
			t.Errorf("%d.String() = %q, want %q", m, m.String(), want)
		}
	}
}
