package diagfmt

import (
	"encoding/json"
	"io"

	"htmlit/internal/diag"
	"htmlit/internal/engine"
	"htmlit/internal/fold"
	"htmlit/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// FoldJSON — один диапазон сворачивания.
type FoldJSON struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// FoldsOutput — корневая структура для вывода fold-диапазонов.
type FoldsOutput struct {
	Folds []FoldJSON `json:"folds"`
	Count int        `json:"count"`
}

// LiteralJSON — один найденный литерал.
type LiteralJSON struct {
	Location LocationJSON `json:"location"`
	Content  string       `json:"content"`
}

// LiteralsOutput — корневая структура для вывода литералов.
type LiteralsOutput struct {
	Literals []LiteralJSON `json:"literals"`
	Count    int           `json:"count"`
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs, span.File, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := 0; i < maxItems; i++ {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions),
				}
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return DiagnosticsOutput{Diagnostics: diagnostics, Count: len(diagnostics)}
}

// JSON сериализует диагностики в JSON с отступами.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out := BuildDiagnosticsOutput(bag, fs, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// FoldsJSON сериализует fold-диапазоны одного файла.
func FoldsJSON(w io.Writer, fs *source.FileSet, id source.FileID, ranges []fold.Range, pathMode PathMode) error {
	folds := make([]FoldJSON, 0, len(ranges))
	path := formatPath(fs, id, pathMode)
	for _, r := range ranges {
		folds = append(folds, FoldJSON{File: path, StartLine: r.StartLine, EndLine: r.EndLine})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FoldsOutput{Folds: folds, Count: len(folds)})
}

// LiteralsJSON сериализует найденные литералы одного файла.
func LiteralsJSON(w io.Writer, fs *source.FileSet, id source.FileID, lits []engine.LiteralInfo, opts JSONOpts) error {
	out := make([]LiteralJSON, 0, len(lits))
	for _, lit := range lits {
		span := source.Span{File: id, Start: uint32(lit.Span.Start), End: uint32(lit.Span.End)}
		out = append(out, LiteralJSON{
			Location: makeLocation(span, fs, opts.PathMode, opts.IncludePositions),
			Content:  lit.Content,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(LiteralsOutput{Literals: out, Count: len(out)})
}
