package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Сканер литералов
	ScanInfo Code = 1000

	// Структура HTML внутри литерала
	HTMLInfo              Code = 2000
	HTMLUnmatchedClosing  Code = 2001
	HTMLMismatchedClosing Code = 2002
	HTMLUnclosedTag       Code = 2003

	// Ввод-вывод при пакетной проверке
	IOLoadFileError Code = 9001
)

// ID returns a stable short identifier like HTML2001.
func (c Code) ID() string {
	switch {
	case c >= 9000:
		return fmt.Sprintf("IO%04d", uint16(c))
	case c >= 2000:
		return fmt.Sprintf("HTML%04d", uint16(c))
	case c >= 1000:
		return fmt.Sprintf("SCAN%04d", uint16(c))
	default:
		return fmt.Sprintf("UNK%04d", uint16(c))
	}
}

func (c Code) String() string {
	switch c {
	case HTMLUnmatchedClosing:
		return "unmatched-closing-tag"
	case HTMLMismatchedClosing:
		return "mismatched-closing-tag"
	case HTMLUnclosedTag:
		return "unclosed-tag"
	case ScanInfo:
		return "scan-info"
	case HTMLInfo:
		return "html-info"
	case IOLoadFileError:
		return "load-file-error"
	}
	return "unknown"
}
