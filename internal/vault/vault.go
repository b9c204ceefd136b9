// Package vault persists a journal as a single password-protected container
// file. Every failure crossing this package boundary is one of five sentinel
// errors; lower-level errors only appear in the message text.
package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/chris-regnier/jrnlctl/internal/datekey"
)

// Sentinel errors for container operations.
var (
	ErrWrongPassword  = errors.New("wrong password")
	ErrInvalidFormat  = errors.New("invalid file format")
	ErrOutOfRangeSize = errors.New("file has invalid size")
	ErrNotFound       = errors.New("file does not exist")
	ErrNotAccessible  = errors.New("cannot access file")
)

var kinds = []error{
	ErrWrongPassword,
	ErrInvalidFormat,
	ErrOutOfRangeSize,
	ErrNotFound,
	ErrNotAccessible,
}

// Kind returns the sentinel error err belongs to, or nil if err did not come
// from this package.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// DefaultMaxSize is the largest container Load accepts.
const DefaultMaxSize int64 = 32 << 20

// Document is the decrypted content of a container: one text per day.
type Document struct {
	Entries map[datekey.DateKey]string `json:"entries"`
}

// NewDocument returns an empty document.
func NewDocument() Document {
	return Document{Entries: make(map[datekey.DateKey]string)}
}

// Store reads and writes containers.
type Store struct {
	kdf     KDFParams
	maxSize int64
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKDF sets the key derivation parameters used for new containers. Loading
// always uses the parameters recorded in the container header.
func WithKDF(p KDFParams) Option {
	return func(s *Store) { s.kdf = p }
}

// WithMaxSize sets the size limit enforced by Load.
func WithMaxSize(n int64) Option {
	return func(s *Store) { s.maxSize = n }
}

// WithLogger sets the logger. Passwords and entry text are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store.
func New(opts ...Option) *Store {
	s := &Store{
		kdf:     DefaultKDF,
		maxSize: DefaultMaxSize,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and decrypts the container at path.
func (s *Store) Load(path, password string) (Document, error) {
	doc, err := s.load(path, password)
	if err != nil {
		s.logger.Debug("load failed", "path", path, "kind", Kind(err), "error", err)
		return Document{}, err
	}
	s.logger.Info("journal loaded", "path", path, "entries", len(doc.Entries))
	return doc, nil
}

func (s *Store) load(path, password string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, ioError("opening file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Document{}, ioError("reading file info", err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%w: %s is a directory", ErrNotAccessible, path)
	}
	if info.Size() > s.maxSize {
		return Document{}, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrOutOfRangeSize, info.Size(), s.maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, s.maxSize+1))
	if err != nil {
		return Document{}, ioError("reading file", err)
	}
	if int64(len(data)) > s.maxSize {
		return Document{}, fmt.Errorf("%w: file grew beyond the %d byte limit", ErrOutOfRangeSize, s.maxSize)
	}

	plaintext, err := open(data, password)
	if err != nil {
		return Document{}, err
	}
	return decodeDocument(plaintext)
}

// Save encrypts doc and replaces the container at path with it.
func (s *Store) Save(doc Document, path, password string) error {
	if err := s.save(doc, path, password); err != nil {
		s.logger.Warn("save failed", "path", path, "kind", Kind(err), "error", err)
		return err
	}
	s.logger.Info("journal saved", "path", path, "entries", len(doc.Entries))
	return nil
}

func (s *Store) save(doc Document, path, password string) error {
	plaintext, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	sealed, err := seal(plaintext, password, s.kdf)
	if err != nil {
		return err
	}
	return atomicWrite(path, sealed)
}

// Probe reports whether path holds a container, regardless of which password
// protects it. Only a header-level format failure counts as unrecognized.
func (s *Store) Probe(path string) bool {
	_, err := s.load(path, "")
	return !errors.Is(err, ErrInvalidFormat)
}

func encodeDocument(doc Document) ([]byte, error) {
	entries := doc.Entries
	if entries == nil {
		entries = map[datekey.DateKey]string{}
	}
	data, err := json.Marshal(Document{Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding entries: %v", ErrInvalidFormat, err)
	}
	return data, nil
}

func decodeDocument(data []byte) (Document, error) {
	var payload struct {
		Entries *map[datekey.DateKey]string `json:"entries"`
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return Document{}, fmt.Errorf("%w: decoding entries: %v", ErrInvalidFormat, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Document{}, fmt.Errorf("%w: trailing data after document", ErrInvalidFormat)
	}
	if payload.Entries == nil {
		return Document{}, fmt.Errorf("%w: missing entries", ErrInvalidFormat)
	}
	return Document{Entries: *payload.Entries}, nil
}

func ioError(op string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrNotAccessible, op, err)
}

func writeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrNotAccessible, op, err)
}

// atomicWrite writes data to a temp file next to path then renames it over
// path, so readers see either the old or the new container.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return writeError("creating temp file", err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return writeError("acquiring lock", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return writeError("writing temp file", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return writeError("syncing temp file", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return writeError("closing temp file", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return writeError("renaming file", err)
	}

	return nil
}
