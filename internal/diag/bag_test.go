package diag

import (
	"testing"

	"htmlit/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewWarning(HTMLUnclosedTag, span(1, 4, 8), "later file"))
	bag.Add(NewWarning(HTMLUnclosedTag, span(0, 20, 24), "later offset"))
	bag.Add(NewWarning(HTMLUnclosedTag, span(0, 4, 8), "warning first pos"))
	bag.Add(NewError(HTMLMismatchedClosing, span(0, 4, 8), "error first pos"))

	bag.Sort()
	items := bag.Items()
	// file, затем offset, затем severity по убыванию
	if items[0].Message != "error first pos" {
		t.Fatalf("error should sort before warning at same span: %v", items)
	}
	if items[1].Message != "warning first pos" || items[2].Message != "later offset" {
		t.Fatalf("wrong offset order: %v", items)
	}
	if items[3].Primary.File != 1 {
		t.Fatalf("file 1 should come last: %v", items)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewError(HTMLMismatchedClosing, span(0, 4, 8), "first"))
	bag.Add(NewError(HTMLMismatchedClosing, span(0, 4, 8), "duplicate"))
	bag.Add(NewError(HTMLMismatchedClosing, span(0, 9, 12), "other span"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 after dedup, got %d: %v", bag.Len(), bag.Items())
	}
	if bag.Items()[0].Message != "first" {
		t.Fatalf("dedup must keep the first occurrence: %v", bag.Items())
	}
}

func TestBagHasWarnings(t *testing.T) {
	bag := NewBag(4)
	if bag.HasWarnings() {
		t.Fatalf("empty bag reports warnings")
	}
	bag.Add(New(SevInfo, HTMLInfo, span(0, 0, 1), "info"))
	if bag.HasWarnings() {
		t.Fatalf("info alone should not count as warning")
	}
	bag.Add(NewWarning(HTMLUnclosedTag, span(0, 0, 1), "warn"))
	if !bag.HasWarnings() {
		t.Fatalf("bag with a warning reports none")
	}
	if bag.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	bag.Add(NewError(HTMLUnmatchedClosing, span(0, 0, 1), "err"))
	if !bag.HasWarnings() || !bag.HasErrors() {
		t.Fatalf("error should satisfy both predicates")
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(HTMLUnmatchedClosing, span(0, 0, 1), "a"))
	b := NewBag(2)
	b.Add(NewError(HTMLUnmatchedClosing, span(0, 2, 3), "b1"))
	b.Add(NewError(HTMLUnmatchedClosing, span(0, 4, 5), "b2"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("merge lost diagnostics: %d", a.Len())
	}
	if !a.Add(NewError(HTMLUnmatchedClosing, span(0, 6, 7), "after")) {
		t.Fatalf("merge should have grown the cap")
	}
}

func TestBagReporterCarriesNotes(t *testing.T) {
	bag := NewBag(4)
	rep := BagReporter{Bag: bag}
	rep.Report(HTMLMismatchedClosing, SevError, span(0, 10, 14), "closing </i> does not match", []Note{
		{Span: span(0, 2, 5), Msg: "opening tag <b> here"},
	})

	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || d.Code != HTMLMismatchedClosing {
		t.Fatalf("wrong diagnostic: %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "opening tag <b> here" || d.Notes[0].Span.Start != 2 {
		t.Fatalf("note lost or mangled: %+v", d.Notes)
	}
}
