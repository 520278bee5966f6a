package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"htmlit/internal/diag"
	"htmlit/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
	pathColor    = color.New(color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes
// в том же формате. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	for i := 0; i < maxItems; i++ {
		d := items[i]
		printHeading(w, fs, d.Primary, d.Severity, d.Code, d.Message, opts)
		printContext(w, fs, d.Primary, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				printHeading(w, fs, note.Span, diag.SevInfo, d.Code, note.Msg, opts)
				printContext(w, fs, note.Span, opts)
			}
		}
	}
	if maxItems < len(items) {
		fmt.Fprintf(w, "... and %d more\n", len(items)-maxItems)
	}
}

func printHeading(w io.Writer, fs *source.FileSet, span source.Span, sev diag.Severity, code diag.Code, msg string, opts PrettyOpts) {
	start, _ := fs.Resolve(span)
	loc := fmt.Sprintf("%s:%d:%d", formatPath(fs, span.File, opts.PathMode), start.Line, start.Col)
	sevText := strings.ToUpper(sev.String())
	if opts.Color {
		loc = pathColor.Sprint(loc)
		sevText = severityColor(sev).Sprint(sevText)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", loc, sevText, code.ID(), msg)
}

// printContext печатает строку исходника и подчёркивание ^~~~ под спаном.
func printContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.TrimRight(line, "\r\n")
	fmt.Fprintf(w, "  %s\n", line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	width := 1
	if end.Line == start.Line && int(end.Col) > int(start.Col) {
		width = int(end.Col - start.Col)
	}
	if col+width > len(line)+1 {
		width = len(line) + 1 - col
	}
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", col), underline)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
