package lsp

import (
	"encoding/json"

	"htmlit/internal/project"
)

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	if s.applySettings(params.Settings) {
		s.scheduleDiagnostics()
	}
	return nil
}

// applySettings применяет настройки клиента; сейчас переопределяется
// только список лидеров. Возвращает true, если конвейер пересобран.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return false
	}
	leaders := settings.Htmlit.Literals.Leaders
	if len(leaders) == 0 {
		return false
	}
	for _, leader := range leaders {
		if !project.IsValidLeader(leader) {
			return false
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Literals.Leaders = leaders
	s.rebuildEngineLocked()
	return true
}
