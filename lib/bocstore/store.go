// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bocstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bureau-foundation/boc/lib/boc"
	"github.com/bureau-foundation/boc/lib/clock"
	"github.com/bureau-foundation/boc/lib/codec"
)

// Directory names within the store root.
const (
	blobDir   = "blobs"
	recordDir = "records"
	tmpDir    = "tmp"
)

// DefaultCacheSize is the number of decoded graphs kept in memory when
// Options.CacheSize is zero.
const DefaultCacheSize = 256

// RefPrefix starts every short reference returned in Record.Ref.
const RefPrefix = "boc-"

// refHexLength is the number of digest hex characters in a short
// reference.
const refHexLength = 12

var (
	// ErrNotFound is returned for a digest the store does not hold.
	ErrNotFound = errors.New("bocstore: not found")

	// ErrCorrupt is returned when a stored blob decodes to a graph
	// whose digest differs from its address.
	ErrCorrupt = errors.New("bocstore: stored content does not match its digest")

	// ErrAmbiguousRef is returned by Resolve when a short reference
	// matches more than one stored graph.
	ErrAmbiguousRef = errors.New("bocstore: ambiguous reference")
)

// Options configures a Store.
type Options struct {
	// Compression is "auto", "none", "lz4" or "zstd". Empty means
	// "auto", which probes each blob with SelectCompression.
	Compression string

	// CacheSize is the number of decoded graphs kept in memory.
	// Zero means DefaultCacheSize.
	CacheSize int

	// Limits bound decoding of containers passed to Import. Blobs
	// read back from the store are decoded with the same limits.
	Limits boc.Limits

	// Clock stamps Record.CreatedAt. Nil means the real clock.
	Clock clock.Clock

	// Logger receives debug logs. Nil discards them.
	Logger *slog.Logger
}

// Record is the metadata stored alongside each blob.
type Record struct {
	// Hash is the digest of the root cell and the store address.
	Hash boc.Hash `json:"hash"`

	// Ref is the short reference (boc-<12 hex chars>).
	Ref string `json:"ref"`

	// Cells is the number of distinct cells in the canonical
	// container.
	Cells int `json:"cells"`

	// Size is the length of the canonical container in bytes.
	Size int `json:"size"`

	// StoredSize is the length of the blob file in bytes.
	StoredSize int `json:"stored_size"`

	// Compression is the algorithm the blob payload was written
	// with.
	Compression CompressionTag `json:"compression"`

	// CreatedAt is when the graph was first stored.
	CreatedAt time.Time `json:"created_at"`
}

// Store manages a store directory. All methods are safe for concurrent
// use.
type Store struct {
	root        string
	auto        bool
	compression CompressionTag
	limits      boc.Limits
	clock       clock.Clock
	logger      *slog.Logger
	cache       *lru.Cache[boc.Hash, *boc.Cell]

	// writeMu serializes Put so the existence check and the write of
	// a digest happen together.
	writeMu sync.Mutex
}

// Open returns a Store rooted at root, creating the directory
// structure if it does not exist.
func Open(root string, options Options) (*Store, error) {
	store := &Store{
		root:   root,
		limits: options.Limits,
		clock:  options.Clock,
		logger: options.Logger,
	}
	switch options.Compression {
	case "", "auto":
		store.auto = true
	default:
		tag, err := ParseCompressionTag(options.Compression)
		if err != nil {
			return nil, err
		}
		store.compression = tag
	}
	if store.clock == nil {
		store.clock = clock.Real()
	}
	if store.logger == nil {
		store.logger = slog.New(slog.DiscardHandler)
	}

	cacheSize := options.CacheSize
	if cacheSize == 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[boc.Hash, *boc.Cell](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating cell cache: %w", err)
	}
	store.cache = cache

	for _, dir := range []string{
		root,
		filepath.Join(root, blobDir),
		filepath.Join(root, recordDir),
		filepath.Join(root, tmpDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
		}
	}
	return store, nil
}

// Root returns the store directory.
func (s *Store) Root() string {
	return s.root
}

// Put stores the graph under root and returns its record. Storing a
// graph that is already present returns the existing record.
func (s *Store) Put(root *boc.Cell) (*Record, error) {
	hash, err := boc.Digest(root)
	if err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if record, err := s.Stat(hash); err == nil {
		s.logger.Debug("graph already stored", "ref", record.Ref)
		s.cache.Add(hash, root)
		return record, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	data, err := boc.SerializeWithOptions(root, boc.SerializeOptions{CRC32C: true, DedupContent: true})
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", boc.FormatHash(hash), err)
	}
	header, err := boc.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("reading back canonical container: %w", err)
	}

	tag := s.compression
	if s.auto {
		tag = SelectCompression(data)
	}
	blob, used, err := encodeBlob(data, tag)
	if err != nil {
		return nil, err
	}
	if err := s.writeFile(s.blobPath(hash), "blob-*.bin", blob); err != nil {
		return nil, fmt.Errorf("writing blob: %w", err)
	}

	record := &Record{
		Hash:        hash,
		Ref:         shortRef(hash),
		Cells:       header.CellCount,
		Size:        len(data),
		StoredSize:  len(blob),
		Compression: used,
		CreatedAt:   s.clock.Now().UTC(),
	}
	encoded, err := codec.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}
	if err := s.writeFile(s.recordPath(hash), "record-*.cbor", encoded); err != nil {
		return nil, fmt.Errorf("writing record: %w", err)
	}

	s.cache.Add(hash, root)
	s.logger.Debug("stored graph",
		"ref", record.Ref,
		"cells", record.Cells,
		"size", record.Size,
		"stored_size", record.StoredSize,
		"compression", used.String(),
	)
	return record, nil
}

// Import decodes a serialized container and stores each of its roots.
// The records are returned in root order.
func (s *Store) Import(data []byte) ([]*Record, error) {
	roots, err := boc.DeserializeWithLimits(data, s.limits)
	if err != nil {
		return nil, err
	}
	records := make([]*Record, 0, len(roots))
	for i, root := range roots {
		record, err := s.Put(root)
		if err != nil {
			return records, fmt.Errorf("storing root %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Get returns the canonical serialized container for hash.
func (s *Store) Get(hash boc.Hash) ([]byte, error) {
	blob, err := os.ReadFile(s.blobPath(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, boc.FormatHash(hash))
	}
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", boc.FormatHash(hash), err)
	}
	data, err := decodeBlob(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding blob %s: %w", boc.FormatHash(hash), err)
	}
	return data, nil
}

// Load returns the graph stored under hash. The decoded graph is
// checked against its address and cached.
func (s *Store) Load(hash boc.Hash) (*boc.Cell, error) {
	if root, ok := s.cache.Get(hash); ok {
		return root, nil
	}

	data, err := s.Get(hash)
	if err != nil {
		return nil, err
	}
	roots, err := boc.DeserializeWithLimits(data, s.limits)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", boc.FormatHash(hash), err)
	}
	if len(roots) != 1 {
		return nil, fmt.Errorf("%w: %s holds %d roots", ErrCorrupt, boc.FormatHash(hash), len(roots))
	}
	actual, err := boc.Digest(roots[0])
	if err != nil {
		return nil, err
	}
	if actual != hash {
		return nil, fmt.Errorf("%w: %s decodes to %s", ErrCorrupt, boc.FormatHash(hash), boc.FormatHash(actual))
	}

	s.cache.Add(hash, roots[0])
	return roots[0], nil
}

// Stat returns the record for hash.
func (s *Store) Stat(hash boc.Hash) (*Record, error) {
	data, err := os.ReadFile(s.recordPath(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, boc.FormatHash(hash))
	}
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", boc.FormatHash(hash), err)
	}
	var record Record
	if err := codec.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", boc.FormatHash(hash), err)
	}
	return &record, nil
}

// Has reports whether the store holds hash.
func (s *Store) Has(hash boc.Hash) bool {
	_, err := os.Stat(s.recordPath(hash))
	return err == nil
}

// Resolve parses a full digest in hex or a short reference
// (boc-<12 hex chars>) into the digest of a stored graph.
func (s *Store) Resolve(reference string) (boc.Hash, error) {
	if !strings.HasPrefix(reference, RefPrefix) {
		hash, err := boc.ParseHash(reference)
		if err != nil {
			return boc.Hash{}, err
		}
		if !s.Has(hash) {
			return boc.Hash{}, fmt.Errorf("%w: %s", ErrNotFound, reference)
		}
		return hash, nil
	}

	prefix := strings.ToLower(strings.TrimPrefix(reference, RefPrefix))
	if len(prefix) != refHexLength || strings.Trim(prefix, "0123456789abcdef") != "" {
		return boc.Hash{}, fmt.Errorf("malformed reference %q: want %s followed by %d hex characters",
			reference, RefPrefix, refHexLength)
	}
	matches, err := filepath.Glob(filepath.Join(s.root, recordDir, prefix[:2], prefix[2:4], prefix+"*.cbor"))
	if err != nil {
		return boc.Hash{}, err
	}
	switch len(matches) {
	case 0:
		return boc.Hash{}, fmt.Errorf("%w: %s", ErrNotFound, reference)
	case 1:
		return boc.ParseHash(strings.TrimSuffix(filepath.Base(matches[0]), ".cbor"))
	default:
		return boc.Hash{}, fmt.Errorf("%w: %s matches %d graphs", ErrAmbiguousRef, reference, len(matches))
	}
}

// writeFile writes data to path through a temporary file and an
// atomic rename. An existing file at path is left in place.
func (s *Store) writeFile(path, pattern string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Join(s.root, tmpDir), pattern)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating shard directory: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming to %s: %w", path, err)
	}
	success = true
	return nil
}

// blobPath returns the sharded path of a blob:
// blobs/a3/f9/a3f9b2c1e7d4...
func (s *Store) blobPath(hash boc.Hash) string {
	hex := boc.FormatHash(hash)
	return filepath.Join(s.root, blobDir, hex[:2], hex[2:4], hex)
}

func (s *Store) recordPath(hash boc.Hash) string {
	hex := boc.FormatHash(hash)
	return filepath.Join(s.root, recordDir, hex[:2], hex[2:4], hex+".cbor")
}

func shortRef(hash boc.Hash) string {
	return RefPrefix + boc.FormatHash(hash)[:refHexLength]
}
