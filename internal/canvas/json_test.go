package canvas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCellJSONRoundTrip(t *testing.T) {
	cells := []Cell{
		BlankCell(),
		NewCell('#', ColorRed),
		NewCell('~', ColorCyan).WithBackground(ColorBlue),
		NewCell('é', ColorDefault),
	}

	for _, want := range cells {
		data, err := json.Marshal(want)
		require.NoError(t, err)

		var got Cell
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, want, got, "cell should survive a JSON round trip: %s", data)
	}
}

func TestCellJSONOmitsDefaults(t *testing.T) {
	data, err := json.Marshal(BlankCell())
	require.NoError(t, err)
	require.JSONEq(t, `{"ch":" "}`, string(data), "blank cells should only carry their character")

	data, err = json.Marshal(NewCell('x', ColorGreen))
	require.NoError(t, err)
	require.JSONEq(t, `{"ch":"x","fg":"green"}`, string(data))

	data, err = json.Marshal(NewCell('x', ColorGreen).WithBackground(ColorBlack))
	require.NoError(t, err)
	require.JSONEq(t, `{"ch":"x","fg":"green","bg":"black"}`, string(data))
}

func TestCellJSONRejectsBadCharacters(t *testing.T) {
	var c Cell

	require.Error(t, json.Unmarshal([]byte(`{"ch":""}`), &c), "empty character")
	require.Error(t, json.Unmarshal([]byte(`{"ch":"ab"}`), &c), "multiple runes")
	require.Error(t, json.Unmarshal([]byte(`{"ch":"x","fg":"neon"}`), &c), "unknown color")
}

func TestCanvasJSONRoundTrip(t *testing.T) {
	c := New(4, 3)
	c.Set(0, 0, NewCell('a', ColorRed))
	c.Set(3, 2, NewCell('z', ColorWhite).WithBackground(ColorMagenta))
	c.Set(1, 1, NewCell('*', ColorYellow))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var got Canvas
	require.NoError(t, json.Unmarshal(data, &got))

	require.True(t, c.Equal(&got), "canvas should survive a JSON round trip")
}

func TestCanvasJSONRejectsMalformedDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"zero width", `{"width":0,"height":3,"cells":[]}`},
		{"negative height", `{"width":2,"height":-1,"cells":[]}`},
		{"cell count mismatch", `{"width":2,"height":2,"cells":[{"ch":" "}]}`},
		{"not json", `{"width":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Canvas
			require.Error(t, json.Unmarshal([]byte(tc.doc), &c))
		})
	}
}

func TestCanvasJSONRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 12).Draw(t, "w")
		h := rapid.IntRange(1, 12).Draw(t, "h")
		c := New(w, h)

		n := rapid.IntRange(0, 20).Draw(t, "n")
		for i := 0; i < n; i++ {
			x := rapid.IntRange(0, w-1).Draw(t, "x")
			y := rapid.IntRange(0, h-1).Draw(t, "y")
			ch := rapid.RuneFrom([]rune("#@.*+% ~")).Draw(t, "ch")
			fg := Color(rapid.IntRange(0, 8).Draw(t, "fg"))
			cell := NewCell(ch, fg)
			if rapid.Bool().Draw(t, "hasBg") {
				cell = cell.WithBackground(Color(rapid.IntRange(0, 8).Draw(t, "bg")))
			}
			c.Set(x, y, cell)
		}

		data, err := json.Marshal(c)
		require.NoError(t, err)

		var got Canvas
		require.NoError(t, json.Unmarshal(data, &got))
		require.True(t, c.Equal(&got))
	})
}
