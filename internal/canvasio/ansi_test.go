package canvasio

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pinceau/internal/canvas"
)

func TestEncodeANSIPlainCellsStayPlain(t *testing.T) {
	c := canvas.New(3, 1)
	c.Set(0, 0, canvas.NewCell('h', canvas.ColorDefault))
	c.Set(1, 0, canvas.NewCell('i', canvas.ColorDefault))

	got := EncodeANSI(c)
	require.Equal(t, "hi\n", got, "uncolored cells carry no escape sequences")
}

func TestEncodeANSIColorsCells(t *testing.T) {
	c := canvas.New(2, 1)
	c.Set(0, 0, canvas.NewCell('x', canvas.ColorRed))
	c.Set(1, 0, canvas.NewCell('y', canvas.ColorDefault).WithBackground(canvas.ColorBlue))

	got := EncodeANSI(c)
	require.Contains(t, got, "\x1b[", "colored cells emit SGR sequences")
	require.Equal(t, "xy\n", ansi.Strip(got), "stripping colors leaves the character layer")
}

func TestEncodeANSITrimsInvisibleTrailers(t *testing.T) {
	c := canvas.New(6, 2)
	c.Set(0, 0, canvas.NewCell('a', canvas.ColorGreen))
	// A trailing space with only a foreground color renders as nothing.
	c.Set(1, 0, canvas.NewCell(' ', canvas.ColorRed))
	// A background-painted space is visible and must survive.
	c.Set(0, 1, canvas.NewCell(' ', canvas.ColorDefault).WithBackground(canvas.ColorYellow))

	got := EncodeANSI(c)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "a", ansi.Strip(lines[0]))
	require.Equal(t, " ", ansi.Strip(lines[1]), "background-painted blanks stay")
	require.Contains(t, lines[1], "\x1b[", "the surviving blank carries its background")
}

func TestEncodeViaSaveExtension(t *testing.T) {
	c := canvas.New(2, 1)
	c.Set(0, 0, canvas.NewCell('z', canvas.ColorCyan))

	data, err := Encode("art.ans", c)
	require.NoError(t, err)
	require.Contains(t, string(data), "\x1b[", ".ans encodes with colors")

	data, err = Encode("art.txt", c)
	require.NoError(t, err)
	require.NotContains(t, string(data), "\x1b[", "text encodes without colors")
}
