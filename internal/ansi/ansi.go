// Package ansi renders card images as truecolor half-block terminal art
package ansi

import (
	"fmt"
	"image"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

const (
	// DefaultWidth and DefaultHeight are in character cells; a card is 488x680
	DefaultWidth  = 30
	DefaultHeight = 21

	halfBlock = '▀'
	reset     = "\x1b[0m"
)

// Render converts an image to width x height cells of ANSI art, one line per row.
// Every cell packs four source pixels: the top two become the foreground of an
// upper half block and the bottom two its background.
func Render(img image.Image, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			upper := average(colorAt(resized, x, y), colorAt(resized, x+1, y))
			lower := average(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buffer.WriteString(cell(halfBlock, upper, lower))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

func colorAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	p := image.Pt(bounds.Min.X+x, bounds.Min.Y+y)
	if !p.In(bounds) {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(p.X, p.Y))
	if !ok {
		// fully transparent
		return colorful.Color{}
	}
	return c
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}.Clamped()
}

func cell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c%s", r1, g1, b1, r2, g2, b2, char, reset)
}

// Strip removes ANSI escape sequences from a string
func Strip(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// VisibleWidth returns the number of terminal columns a line occupies
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(Strip(s))
}

// Wrap wraps text to the given width, never splitting words
func Wrap(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	current := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width {
			current += " " + word
			continue
		}
		result = append(result, current)
		current = word
	}
	return append(result, current)
}

// SideBySide writes art on the left and info lines on the right, separated by spacing columns
func SideBySide(w io.Writer, art string, info []string, spacing int) {
	artLines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	if art == "" {
		artLines = nil
	}
	artWidth := 0
	for _, line := range artLines {
		artWidth = max(artWidth, VisibleWidth(line))
	}
	infoStart := artWidth + spacing

	fmt.Fprintln(w)
	for i := 0; i < max(len(artLines), len(info)); i++ {
		fmt.Fprint(w, "  ")
		if i < len(artLines) {
			fmt.Fprint(w, artLines[i])
			fmt.Fprint(w, strings.Repeat(" ", infoStart-VisibleWidth(artLines[i])))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoStart))
		}
		if i < len(info) {
			fmt.Fprint(w, info[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

