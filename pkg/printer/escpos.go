package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11
	FontWide   = 0x10
	FontTall   = 0x01
)

// Paper widths in characters for the supported paper sizes.
const (
	Width58mm = 32
	Width80mm = 48
)

// WidthForPaper maps a paper size name to a character width.
func WidthForPaper(paper string) int {
	if paper == "58mm" {
		return Width58mm
	}
	return Width80mm
}

// Document builds an ESC/POS byte stream for thermal printers.
// Column math counts runes so accented item names line up.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = Width80mm
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Width returns the printable width in characters.
func (d *Document) Width() int {
	return d.width
}

// Align sets text alignment for the following lines.
func (d *Document) Align(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// Bold toggles emphasized printing.
func (d *Document) Bold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// Size sets the character size.
func (d *Document) Size(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes s followed by a line feed. Empty strings are skipped.
func (d *Document) Text(s string) *Document {
	if s == "" {
		return d
	}
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// Textf writes a formatted line.
func (d *Document) Textf(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Row prints left and right on one line, padding between them. A left part
// too long for the line is truncated so the right part stays aligned.
func (d *Document) Row(left, right string) *Document {
	rw := utf8.RuneCountInString(right)
	maxLeft := d.width - rw - 1
	if maxLeft < 1 {
		maxLeft = 1
	}
	left = truncateRunes(left, maxLeft)
	gap := d.width - utf8.RuneCountInString(left) - rw
	if gap < 1 {
		gap = 1
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", gap))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
	return d
}

// Rule prints a full-width line of ch.
func (d *Document) Rule(ch rune) *Document {
	d.buf.WriteString(strings.Repeat(string(ch), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Feed sends n line feeds.
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Cut feeds and sends a partial cut.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
