package lsp

import (
	"context"
	"sync/atomic"
	"time"

	"htmlit/internal/diag"
	"htmlit/internal/engine"
	"htmlit/internal/source"
)

func (s *Server) scheduleDiagnostics() {
	s.mu.Lock()
	seq := atomic.AddUint64(&s.analysisSeq, 1)
	atomic.StoreUint64(&s.latestSeq, seq)
	if s.diagCancel != nil {
		s.diagCancel()
	}
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	delay := s.debounce
	s.debounceTimer = time.AfterFunc(delay, func() {
		s.runDiagnostics(seq)
	})
	s.mu.Unlock()
}

func (s *Server) runDiagnostics(seq uint64) {
	if !s.isLatestSeq(seq) {
		return
	}
	s.mu.Lock()
	if len(s.openDocs) == 0 {
		s.mu.Unlock()
		s.clearPublishedDiagnostics()
		return
	}
	if s.diagCancel != nil {
		s.diagCancel()
	}
	base := s.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)
	s.diagCancel = cancel
	docs := make(map[string]string, len(s.openDocs))
	langs := make(map[string]string, len(s.openDocs))
	for uri, text := range s.openDocs {
		docs[uri] = text
		langs[uri] = s.langs[uri]
	}
	eng := s.eng
	maxDiags := s.cfg.Check.MaxDiagnostics
	s.mu.Unlock()

	for uri, text := range docs {
		if !s.isLatestSeq(seq) {
			return
		}
		list := analyzeDocument(ctx, eng, uri, text, langs[uri], maxDiags)
		if ctx.Err() != nil || !s.isLatestSeq(seq) {
			return
		}
		s.mu.Lock()
		if len(list) > 0 {
			s.published[uri] = struct{}{}
		} else {
			delete(s.published, uri)
		}
		s.mu.Unlock()
		if err := s.sendPublish(uri, list); err != nil {
			s.logf("failed to publish diagnostics: %v", err)
		}
	}
}

// analyzeDocument прогоняет проверку одного буфера и переводит
// диагностики в LSP-формат (UTF-16 позиции).
func analyzeDocument(ctx context.Context, eng *engine.Engine, uri, text, lang string, maxDiags int) []lspDiagnostic {
	file := virtualFile(uri, text, lang)
	if !source.LangSupported(file.Lang) {
		return nil
	}
	bag := diag.NewBag(maxDiags)
	eng.Check(ctx, file, bag)
	// клиенту — в стабильном порядке позиций
	bag.Sort()
	items := bag.Items()
	if len(items) == 0 {
		return nil
	}
	list := make([]lspDiagnostic, 0, len(items))
	for _, d := range items {
		list = append(list, lspDiagnostic{
			Range:    rangeForSpan(file, d.Primary),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "htmlit",
			Message:  d.Message,
		})
	}
	return list
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}

// clearPublishedDiagnostics снимает все опубликованные диагностики.
func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.published))
	for uri := range s.published {
		uris = append(uris, uri)
	}
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}
