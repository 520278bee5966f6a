package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"htmlit/internal/diag"
	"htmlit/internal/engine"
	"htmlit/internal/fold"
	"htmlit/internal/literal"
	"htmlit/internal/source"
)

func TestJSONDiagnostics(t *testing.T) {
	fs, _, bag := setup(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("wrong count: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "HTML2001" || d.Severity != "ERROR" {
		t.Fatalf("wrong code/severity: %+v", d)
	}
	if d.Location.File != "app.js" || d.Location.StartByte != 15 || d.Location.StartLine != 1 || d.Location.StartCol != 16 {
		t.Fatalf("wrong location: %+v", d.Location)
	}
}

func TestJSONMax(t *testing.T) {
	fs, id, bag := setup(t)
	bag.Add(diag.NewWarning(diag.HTMLUnclosedTag, source.Span{File: id, Start: 0, End: 1}, "unclosed tag <div>"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("Max not applied: %+v", out)
	}
}

func TestFoldsJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("page.js", []byte("const x = html`\n<div>\n</div>\n`;\n"))
	r := fold.NewResolver(literal.NewMatcher(nil))
	ranges := r.Ranges(context.Background(), fs.Get(id))
	var buf bytes.Buffer
	if err := FoldsJSON(&buf, fs, id, ranges, PathModeBasename); err != nil {
		t.Fatalf("FoldsJSON: %v", err)
	}
	var out FoldsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || out.Folds[0].StartLine != 0 || out.Folds[0].EndLine != 3 {
		t.Fatalf("wrong folds: %+v", out)
	}
}

func TestLiteralsJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("page.js", []byte("const x = html`<div></div>`;"))
	lits := engine.New(engine.Options{}).Literals(context.Background(), fs.Get(id))
	var buf bytes.Buffer
	if err := LiteralsJSON(&buf, fs, id, lits, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("LiteralsJSON: %v", err)
	}
	var out LiteralsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || out.Literals[0].Content != "<div></div>" {
		t.Fatalf("wrong literals: %+v", out)
	}
}
