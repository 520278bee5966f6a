package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"htmlit/internal/diag"
	"htmlit/internal/project"
	"htmlit/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest = [32]byte

// DiskCache хранит результаты проверки файла по хэшу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores cached per-file diagnostics for fast re-checks.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path string
	Lang string

	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic — плоская форма диагностики для сериализации:
// заметки не кэшируем, у проверки баланса их нет.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory (tests).
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "checks".
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer func() {
		// после удачного rename файла уже нет
		_ = os.Remove(tmpName)
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmpName, p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey mixes the file content hash with every config knob the
// diagnostics depend on, so a config edit invalidates naturally.
func cacheKey(file *source.File, cfg project.Config) Digest {
	h := sha256.New()
	h.Write(file.Hash[:])
	h.Write([]byte(file.Lang))
	for _, leader := range cfg.Literals.Leaders {
		h.Write([]byte(leader))
		h.Write([]byte{0})
	}
	h.Write([]byte(cfg.Literals.PlaceholderElement))
	h.Write([]byte(strconv.Itoa(cfg.Literals.MaxCollapsePasses)))
	h.Write([]byte(fmt.Sprintf("s%d", diskCacheSchemaVersion)))
	var key Digest
	copy(key[:], h.Sum(nil))
	return key
}

// bagToPayload converts collected diagnostics to the cacheable form.
func bagToPayload(file *source.File, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   file.Path,
		Lang:   file.Lang,
	}
	items := bag.Items()
	payload.Diagnostics = make([]CachedDiagnostic, len(items))
	for i, d := range items {
		payload.Diagnostics[i] = CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
	}
	return payload
}

// payloadToBag restores diagnostics for a file under its current FileID.
func payloadToBag(payload *DiskPayload, id source.FileID, bag *diag.Bag) {
	for _, cd := range payload.Diagnostics {
		bag.Add(diag.New(
			diag.Severity(cd.Severity),
			diag.Code(cd.Code),
			source.Span{File: id, Start: cd.Start, End: cd.End},
			cd.Message,
		))
	}
}
