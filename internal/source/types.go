package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (editor buffer, test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileDecodedUTF16
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Lang    string // LSP language identifier ("javascript", "typescript", ...)
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Языки, в которых распознаются литералы. Всё остальное — no-op.
var literalLanguages = map[string]bool{
	"javascript":      true,
	"typescript":      true,
	"javascriptreact": true,
	"typescriptreact": true,
}

// LangSupported reports whether the language identifier is one the
// scanner understands.
func LangSupported(lang string) bool {
	return literalLanguages[lang]
}

// LangForPath derives the LSP language identifier from a file extension.
// Unknown extensions yield "".
func LangForPath(path string) string {
	switch ext(path) {
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".jsx":
		return "javascriptreact"
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".tsx":
		return "typescriptreact"
	}
	return ""
}

func ext(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}
