package core

import (
	"strings"
	"testing"
)

// text returns the screen runes with rows joined by newlines.
func text(s *Screen) string {
	var sb strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range s.Width() {
			sb.WriteRune(s.GetCell(x, y).Rune)
		}
	}
	return sb.String()
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got := text(s); got != "      \n      \n      " {
		t.Errorf("new screen = %q, expected spaces", got)
	}
}

func TestScreenCells(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColor(1, 1, '#', ColorRed)
	if c := s.GetCell(1, 1); c.Rune != '#' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red '#'", c)
	}

	s.SetColor(1, 1, '.', ColorDefault)
	if c := s.GetCell(1, 1); c.Rune != '.' || c.Color != ColorDefault {
		t.Errorf("SetColor wrote %+v, expected default '.'", c)
	}

	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 4}} {
		s.SetColor(p[0], p[1], 'x', ColorBlue)
		if c := s.GetCell(p[0], p[1]); c != blank {
			t.Errorf("GetCell%v = %+v, expected blank", p, c)
		}
	}

	s.Clear()
	if c := s.GetCell(1, 1); c != blank {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenDrawing(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColor(6, 0, "clip", ColorDefault)
	s.DrawTextColor(0, 1, "ok", ColorCyan)
	s.DrawHLine(3, 1, 10, '-', ColorGray)

	if got := text(s); got != "      cl\nok -----" {
		t.Errorf("String() = %q", got)
	}
	if c := s.GetCell(1, 1); c.Color != ColorCyan {
		t.Errorf("DrawTextColor color = %v, expected cyan", c.Color)
	}
	if c := s.GetCell(7, 1); c.Rune != '-' || c.Color != ColorGray {
		t.Errorf("DrawHLine end = %+v, expected gray '-'", c)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColor(0, 0, "Hello", ColorGreen)

	s.Resize(3, 2)
	if got := text(s); got != "Hel\n   " {
		t.Errorf("after shrink = %q", got)
	}

	s.Resize(6, 3)
	rows := strings.Split(text(s), "\n")
	if len(rows) != 3 || rows[0] != "Hel   " {
		t.Errorf("after grow = %q", rows)
	}
	if c := s.GetCell(0, 0); c.Color != ColorGreen {
		t.Errorf("resize lost color, got %v", c.Color)
	}
}

func TestScreenCloneIsIndependent(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColor(0, 0, "ab", ColorRed)

	c := s.Clone()
	c.DrawTextColor(0, 0, "zz", ColorBlue)
	c.SetColor(3, 1, '#', ColorGreen)

	if got := text(s); got != "ab  \n    " {
		t.Errorf("original changed to %q", got)
	}
	if cell := s.GetCell(0, 0); cell.Color != ColorRed {
		t.Errorf("original color changed to %v", cell.Color)
	}
	if got := text(c); got != "zz  \n   #" {
		t.Errorf("clone = %q", got)
	}
}

func TestColorRGB(t *testing.T) {
	if got := ColorGreen.RGB(); got.G <= got.R || got.A != 0xff {
		t.Errorf("ColorGreen.RGB() = %v, expected an opaque green", got)
	}
	if got := Color(250).RGB(); got != ColorDefault.RGB() {
		t.Errorf("unknown color = %v, expected the default", got)
	}
}
