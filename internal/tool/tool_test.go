package tool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pinceau/internal/canvas"
)

func TestKindsToolbarOrder(t *testing.T) {
	want := []Kind{KindPencil, KindEraser, KindLine, KindRectangle, KindEllipse, KindFill}
	require.Equal(t, want, Kinds())
}

func TestKindNamesAndLabels(t *testing.T) {
	for _, k := range Kinds() {
		require.NotEqual(t, "Unknown", k.Name(), "every tool has a display name")
		require.NotEqual(t, "?", k.Label(), "every tool has a toolbar label")
		require.Contains(t, k.Label(), "(", "labels carry a key hint")
	}

	require.Equal(t, "Pencil", KindPencil.Name())
	require.Equal(t, "Rect(r)", KindRectangle.Label())
	require.Equal(t, "Unknown", Kind(99).Name())
}

func TestIsShape(t *testing.T) {
	require.False(t, KindPencil.IsShape())
	require.False(t, KindEraser.IsShape())
	require.False(t, KindFill.IsShape())
	require.True(t, KindLine.IsShape())
	require.True(t, KindRectangle.IsShape())
	require.True(t, KindEllipse.IsShape())
}

func TestClampBrushSize(t *testing.T) {
	require.Equal(t, MinBrushSize, ClampBrushSize(0))
	require.Equal(t, MinBrushSize, ClampBrushSize(-4))
	require.Equal(t, 2, ClampBrushSize(2))
	require.Equal(t, MaxBrushSize, ClampBrushSize(3))
	require.Equal(t, MaxBrushSize, ClampBrushSize(12))
}

func TestBrushChoicesEndWithSpace(t *testing.T) {
	choices := BrushChoices()
	require.NotEmpty(t, choices)
	require.Equal(t, ' ', choices[len(choices)-1], "the space brush paints blanks in color")
	require.Equal(t, '#', choices[0])
}

func TestSpecStampCell(t *testing.T) {
	pencil := Spec{Kind: KindPencil, Ch: '@', Color: canvas.ColorRed, Size: 1}
	require.Equal(t, canvas.NewCell('@', canvas.ColorRed), pencil.StampCell())

	eraser := Spec{Kind: KindEraser, Ch: '@', Color: canvas.ColorRed, Size: 1}
	require.Equal(t, canvas.BlankCell(), eraser.StampCell(), "the eraser always stamps the blank cell")
}
