package lsp

import (
	"context"
	"encoding/json"

	"htmlit/internal/source"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	text, lang, ok := s.docSnapshot(uri)
	if !ok {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	s.mu.Lock()
	folds := s.folds
	s.mu.Unlock()

	file := virtualFile(uri, text, lang)
	if !source.LangSupported(file.Lang) {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	ranges := folds.Ranges(context.Background(), file)
	out := make([]foldingRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, foldingRange{
			StartLine: r.StartLine,
			EndLine:   r.EndLine,
			Kind:      "region",
		})
	}
	return s.sendResponse(msg.ID, out)
}
