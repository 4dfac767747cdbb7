// Package canvasio reads and writes canvases in the three formats the
// editor understands: structured JSON (lossless), plain text (characters
// only), and ANSI escape art (export only).
package canvasio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/pinceau/internal/canvas"
	"github.com/zjrosen/pinceau/internal/log"
)

const (
	extJSON = ".json"
	extANSI = ".ans"
)

// ParsePath trims surrounding whitespace from a user-entered path and
// falls back when nothing is left.
func ParsePath(input, fallback string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback
	}
	return input
}

// Encode renders the canvas in the format implied by path's extension:
// .json structured, .ans ANSI escape art, anything else plain text.
func Encode(path string, c *canvas.Canvas) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extJSON:
		data, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encoding canvas: %w", err)
		}
		return data, nil
	case extANSI:
		return []byte(EncodeANSI(c)), nil
	default:
		return []byte(EncodeText(c) + "\n"), nil
	}
}

// Save writes the canvas to path in the extension's format.
func Save(path string, c *canvas.Canvas) error {
	data, err := Encode(path, c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: canvas files are user documents
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info(log.CatIO, "canvas saved", "path", path, "bytes", len(data))
	return nil
}

// Load reads path into a fresh canvas. The caller's live canvas is never
// touched: swap in the result only when Load succeeds. ANSI files are
// export-only and refuse to load.
func Load(path string) (*canvas.Canvas, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == extANSI {
		return nil, fmt.Errorf("%s files are export-only and cannot be opened", extANSI)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the user
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var c *canvas.Canvas
	if ext == extJSON {
		c = &canvas.Canvas{}
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	} else {
		c = DecodeText(string(data))
	}

	log.Info(log.CatIO, "canvas loaded", "path", path, "width", c.Width(), "height", c.Height())
	return c, nil
}

// EncodeText renders the canvas as plain text: one row per line, trailing
// blank cells trimmed, rows joined with newlines. Colors are not
// representable in this form and are dropped.
func EncodeText(c *canvas.Canvas) string {
	lines := make([]string, c.Height())
	for y := 0; y < c.Height(); y++ {
		runes := make([]rune, c.Width())
		end := 0
		for x := 0; x < c.Width(); x++ {
			r := c.Get(x, y).Ch
			runes[x] = r
			if r != ' ' {
				end = x + 1
			}
		}
		lines[y] = string(runes[:end])
	}
	return strings.Join(lines, "\n")
}

// DecodeText parses plain text into a canvas of default-color cells.
// Height is the line count and width the widest line, each at least 1.
// CRLF endings are normalized and one trailing newline is tolerated so
// files written by Save round-trip exactly.
func DecodeText(text string) *canvas.Canvas {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")

	width := 1
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}

	c := canvas.New(width, len(lines))
	for y, line := range lines {
		for x, r := range []rune(line) {
			if r == ' ' {
				continue
			}
			c.Set(x, y, canvas.NewCell(r, canvas.ColorDefault))
		}
	}
	return c
}
