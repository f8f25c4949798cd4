package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"

	"github.com/pivolan/attrition_dashboard/domain/models"
)

const DefaultSeparator = ','

// Loader reads datasets and memoizes them per resolved path for its lifetime.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*Table
	reads int
}

func NewLoader() *Loader {
	return &Loader{cache: make(map[string]*Table)}
}

var defaultLoader = NewLoader()

// Load reads path through the process-wide loader.
func Load(path string) (*Table, error) {
	return defaultLoader.Load(path)
}

// Load returns the table stored at path, reading the file only on the first
// call. Failed loads are not cached.
func (l *Loader) Load(path string) (*Table, error) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.cache[key]; ok {
		return t, nil
	}

	data, err := readSource(key)
	l.reads++
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, path, err)
	}
	t, err := Parse(key, data)
	if err != nil {
		return nil, err
	}
	log.Printf("dataset loaded: %s, %d rows, columns %v", key, t.Len(), t.Columns())
	l.cache[key] = t
	return t, nil
}

// Invalidate drops the cached table for path so the next Load re-reads it.
func (l *Loader) Invalidate(path string) {
	key, err := cacheKey(path)
	if err != nil {
		return
	}
	l.mu.Lock()
	delete(l.cache, key)
	l.mu.Unlock()
}

// Reset empties the cache.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.cache = make(map[string]*Table)
	l.mu.Unlock()
}

// Reads reports how many times the loader went to its source.
func (l *Loader) Reads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reads
}

func (l *Loader) store(key string, t *Table) {
	l.cache[key] = t
}

func cacheKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// Parse turns delimited text with a header row into a Table.
func Parse(source string, data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte(utf8BOM))
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(string(firstLine))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	raw, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s: no header row", models.ErrDataUnavailable, source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, source, err)
	}
	headers := ResolveHeaders(raw)

	var rows [][]string
	for {
		values, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, source, err)
		}
		if len(values) == 1 && values[0] == "" {
			continue
		}
		rows = append(rows, values)
	}
	return NewTable(source, headers, rows)
}
