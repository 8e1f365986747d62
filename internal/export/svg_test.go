package export

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/viz"
)

func TestCanvasSVGNil(t *testing.T) {
	if got := CanvasSVG(nil, 4); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestCanvasSVGDots(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.SetColor(0, 0, lipgloss.Color("#ff0000"))
	c.Set(3, 3)

	out := CanvasSVG(c, 4)
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Fatalf("not an svg document: %q", out)
	}
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(out, `fill="#ff0000"`) {
		t.Error("colored dot lost its color")
	}
	if !strings.Contains(out, `width="16" height="16"`) {
		t.Errorf("unexpected size in %q", out)
	}
}

func TestTrajectorySVG(t *testing.T) {
	paths := [][]dynamo.Vec3{
		{dynamo.V(0, 0, 0), dynamo.V(10, 0, 10), dynamo.V(20, 0, 0)},
		{dynamo.V(5, 0, 5)},
	}
	colors := []dynamo.Color{{1, 0, 0}}

	out := TrajectorySVG(paths, colors, 200, 100)
	if n := strings.Count(out, "<path"); n != 1 {
		t.Errorf("single-point paths are skipped, expected 1 path, got %d", n)
	}
	if !strings.Contains(out, `stroke="#ff0000"`) {
		t.Error("missing path color")
	}
	if strings.Count(out, " L") != 2 {
		t.Error("expected two line segments")
	}
}

func TestTrajectorySVGEmpty(t *testing.T) {
	if got := TrajectorySVG(nil, nil, 10, 10); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
