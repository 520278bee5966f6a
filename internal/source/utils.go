package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"sort"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// decodeUTF16 converts UTF-16 content (detected by its BOM) to UTF-8.
// Editors occasionally save JS/TS sources as UTF-16; everything downstream
// works on UTF-8 bytes.
func decodeUTF16(content []byte) ([]byte, bool) {
	if len(content) < 2 {
		return content, false
	}
	var endian unicode.Endianness
	switch {
	case content[0] == 0xFF && content[1] == 0xFE:
		endian = unicode.LittleEndian
	case content[0] == 0xFE && content[1] == 0xFF:
		endian = unicode.BigEndian
	default:
		return content, false
	}
	dec := unicode.UTF16(endian, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, content)
	if err != nil {
		return content, false
	}
	return out, true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь файл - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: первый lineIdx[i] >= off. Всё, что строго раньше,
	// это переводы строк перед off.
	idx := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })

	var startOff uint32
	if idx > 0 {
		startOff = lineIdx[idx-1] + 1
	}
	return LineCol{Line: uint32(idx + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
