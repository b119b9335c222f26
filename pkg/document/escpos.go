package document

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes
const (
	escByte = 0x1B
	gsByte  = 0x1D
	lfByte  = 0x0A
)

// Ticket accumulates an ESC/POS byte stream for a thermal receipt printer.
// The helpers are shaped around what a sale ticket prints: a centered header
// block, labeled rows with a right-aligned value column, and item lines.
// Width is in characters: 32 for 58mm paper, 48 for 80mm.
type Ticket struct {
	buf   bytes.Buffer
	width int
}

// NewTicket returns an initialized ticket for the given character width.
func NewTicket(charWidth int) *Ticket {
	if charWidth <= 0 {
		charWidth = 32
	}
	t := &Ticket{width: charWidth}
	t.buf.Write([]byte{escByte, '@'}) // initialize printer
	return t
}

// Center switches to centered printing until Left is called.
func (t *Ticket) Center() *Ticket {
	t.buf.Write([]byte{escByte, 'a', 1})
	return t
}

// Left restores left-aligned printing.
func (t *Ticket) Left() *Ticket {
	t.buf.Write([]byte{escByte, 'a', 0})
	return t
}

// Bold toggles emphasized printing.
func (t *Ticket) Bold(on bool) *Ticket {
	b := byte(0)
	if on {
		b = 1
	}
	t.buf.Write([]byte{escByte, 'E', b})
	return t
}

// Title prints s at double width and height, for the store name line.
func (t *Ticket) Title(s string) *Ticket {
	t.buf.Write([]byte{gsByte, '!', 0x11})
	t.Line(s)
	t.buf.Write([]byte{gsByte, '!', 0x00})
	return t
}

// Line writes a line of text followed by a line feed.
func (t *Ticket) Line(s string) *Ticket {
	t.buf.WriteString(s)
	t.buf.WriteByte(lfByte)
	return t
}

// Linef writes a formatted line of text followed by a line feed.
func (t *Ticket) Linef(format string, args ...interface{}) *Ticket {
	return t.Line(fmt.Sprintf(format, args...))
}

// Blank writes n empty lines.
func (t *Ticket) Blank(n int) *Ticket {
	for i := 0; i < n; i++ {
		t.buf.WriteByte(lfByte)
	}
	return t
}

// Rule prints a full-width run of char, the section divider on a ticket.
func (t *Ticket) Rule(char byte) *Ticket {
	return t.Line(strings.Repeat(string(char), t.width))
}

// Row prints a label with its value right-aligned. Rows with an empty value
// are dropped, so optional receipt fields collapse without printing gaps.
func (t *Ticket) Row(label, value string) *Ticket {
	if value == "" {
		return t
	}
	return t.split(label, value)
}

// Amount prints a money row with the value formatted to two decimals.
func (t *Ticket) Amount(label string, v float64) *Ticket {
	return t.split(label, fmt.Sprintf("%.2f", v))
}

// AmountIf prints a money row only when the value is nonzero. Negative
// values keep their sign, so charges and reductions share one helper.
func (t *Ticket) AmountIf(label string, v float64) *Ticket {
	if v == 0 {
		return t
	}
	return t.Amount(label, v)
}

// Item prints one sale row: quantity, name, then the right-aligned total.
// Example: "2x Widget                  20.00"
func (t *Ticket) Item(qty int, name string, total float64) *Ticket {
	return t.split(fmt.Sprintf("%dx %s", qty, name), fmt.Sprintf("%.2f", total))
}

// Cut feeds the ticket clear of the blade and sends a partial cut.
func (t *Ticket) Cut() *Ticket {
	t.Blank(3)
	t.buf.Write([]byte{gsByte, 'V', 0x01})
	return t
}

// Bytes returns the accumulated ESC/POS byte stream.
func (t *Ticket) Bytes() []byte {
	return t.buf.Bytes()
}

// split writes left text and right text on one line, padded apart to the
// ticket width. Overlong lines keep a single space between the columns.
func (t *Ticket) split(left, right string) *Ticket {
	gap := t.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	t.buf.WriteString(left)
	t.buf.WriteString(strings.Repeat(" ", gap))
	t.buf.WriteString(right)
	t.buf.WriteByte(lfByte)
	return t
}
