package kb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// ErrKnowledgeBaseNotFound is returned when the KB resource does not exist.
	ErrKnowledgeBaseNotFound = errors.New("knowledge base not found")

	// ErrInvalidKnowledgeBase is returned when the KB resource cannot be decoded.
	ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")
)

// Format identifies the encoding of a KB resource.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension; anything that is
// not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a KB resource: a list of entries in the given format.
func Parse(data []byte, format Format) ([]Entry, error) {
	var entries []Entry
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKnowledgeBase, err)
	}
	return entries, nil
}

// snapshot is a parsed KB file together with the stat data it was read with.
type snapshot struct {
	modTime time.Time
	size    int64
	entries []Entry
}

// Loader reads the KB file. Every Load observes the file as it is on disk:
// parsed entries are reused only while the file's size and modification time
// are unchanged.
type Loader struct {
	path   string
	format Format
	cache  *cache.Cache
	logger *zap.Logger
}

// NewLoader creates a loader for path. Parsed snapshots expire after ttl;
// a ttl <= 0 keeps them until the file changes.
func NewLoader(path string, ttl time.Duration, logger *zap.Logger) *Loader {
	cleanup := time.Duration(0)
	if ttl > 0 {
		cleanup = 2 * ttl
	}
	return &Loader{
		path:   path,
		format: FormatFromPath(path),
		cache:  cache.New(ttl, cleanup),
		logger: logger,
	}
}

// Path returns the KB file path.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the current KB entries in file order.
func (l *Loader) Load(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrKnowledgeBaseNotFound, l.path)
		}
		return nil, fmt.Errorf("failed to stat knowledge base: %w", err)
	}

	if v, ok := l.cache.Get(l.path); ok {
		snap := v.(*snapshot)
		if snap.size == info.Size() && snap.modTime.Equal(info.ModTime()) {
			return cloneEntries(snap.entries), nil
		}
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	entries, err := Parse(data, l.format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	l.cache.SetDefault(l.path, &snapshot{
		modTime: info.ModTime(),
		size:    info.Size(),
		entries: entries,
	})

	l.logger.Debug("knowledge base loaded",
		zap.String("path", l.path),
		zap.Int("entries", len(entries)))

	return cloneEntries(entries), nil
}
