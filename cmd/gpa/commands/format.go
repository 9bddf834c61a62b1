package commands

import (
	"fmt"
	"io"
	"strings"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// Every command prints through a printer so output can be captured in tests.
// ═══════════════════════════════════════════════════════════

const ruleWidth = 59

type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(args ...interface{}) {
	fmt.Fprintln(p.w, args...)
}

// Header prints a titled block
func (p *printer) Header(title string) {
	p.println()
	p.DoubleSeparator()
	p.printf("  %s\n", title)
	p.Separator()
}

// Separator prints a visual separator
func (p *printer) Separator() {
	p.println(strings.Repeat("─", ruleWidth))
}

// DoubleSeparator prints a double-line separator
func (p *printer) DoubleSeparator() {
	p.println(strings.Repeat("═", ruleWidth))
}

// Warning prints a warning message
func (p *printer) Warning(message string) {
	p.printf("⚠️  %s\n", message)
}

// Success prints a success message
func (p *printer) Success(message string) {
	p.printf("✅ %s\n", message)
}

// Error prints an error message
func (p *printer) Error(message string) {
	p.printf("❌ %s\n", message)
}

// Info prints an info message
func (p *printer) Info(message string) {
	p.printf("ℹ️  %s\n", message)
}

// TableHeader prints a table header
func (p *printer) TableHeader(columns []string, widths []int) {
	p.TableRow(columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	p.println(strings.Repeat("─", totalWidth))
}

// TableRow prints a table row
func (p *printer) TableRow(values []string, widths []int) {
	var b strings.Builder
	for i, val := range values {
		if i < len(values)-1 {
			fmt.Fprintf(&b, "%-*s  ", widths[i], val)
		} else {
			b.WriteString(val)
		}
	}
	p.println(b.String())
}

// KeyValue prints a key-value pair
func (p *printer) KeyValue(key string, value string, keyWidth int) {
	p.printf("   %-*s : %s\n", keyWidth, key, value)
}

// List prints a bulleted list
func (p *printer) List(items []string) {
	for _, item := range items {
		p.printf("   • %s\n", item)
	}
}
