// Package document loads and saves block documents. Documents are
// stored as YAML; on load every block receives a stable key and the
// sequence is validated before it reaches the engine.
package document

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"blockwin/internal/block"
)

// Document is an ordered block sequence with a format version.
type Document struct {
	Version int
	Blocks  []block.Block
}

// record is the YAML wire form of one block. Types travel as strings
// so documents stay hand-editable.
type record struct {
	Key   string         `yaml:"key,omitempty"`
	Type  string         `yaml:"type"`
	Depth int            `yaml:"depth,omitempty"`
	Data  map[string]any `yaml:"data,omitempty"`
}

// file is the YAML wire form of a document.
type file struct {
	Version int      `yaml:"version"`
	Blocks  []record `yaml:"blocks"`
}

// unmarshal decodes YAML into the document. Blocks without a key are
// assigned a fresh UUID.
func (d *Document) unmarshal(data []byte) error {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return &ParseError{Message: "invalid YAML", Err: err}
	}

	blocks := make([]block.Block, 0, len(f.Blocks))
	for i, r := range f.Blocks {
		t, ok := block.ParseType(r.Type)
		if !ok {
			return &ParseError{Message: fmt.Sprintf("block %d: unknown type %q", i, r.Type)}
		}
		key := r.Key
		if key == "" {
			key = uuid.NewString()
		}
		blocks = append(blocks, block.Block{
			Key:   key,
			Type:  t,
			Depth: r.Depth,
			Data:  block.Data(r.Data),
		})
	}

	d.Version = f.Version
	d.Blocks = blocks
	return nil
}

// Load reads, parses, and validates a document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	var d Document
	if err := d.unmarshal(data); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save writes the document to path as YAML. The write goes through a
// temporary file in the same directory so a crash never leaves a
// truncated document behind.
func Save(path string, d *Document) error {
	f := file{Version: d.Version, Blocks: make([]record, 0, len(d.Blocks))}
	for _, b := range d.Blocks {
		f.Blocks = append(f.Blocks, record{
			Key:   b.Key,
			Type:  b.Type.String(),
			Depth: b.Depth,
			Data:  map[string]any(b.Data),
		})
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Validate checks the block sequence: keys must be unique and depths
// non-negative.
func (d *Document) Validate() error {
	seen := make(map[string]int, len(d.Blocks))
	for i, b := range d.Blocks {
		if b.Key == "" {
			return fmt.Errorf("block %d: %w", i, ErrMissingKey)
		}
		if prev, dup := seen[b.Key]; dup {
			return fmt.Errorf("blocks %d and %d share key %q: %w", prev, i, b.Key, ErrDuplicateKey)
		}
		seen[b.Key] = i
		if b.Depth < 0 {
			return fmt.Errorf("block %d (%s): %w", i, b.Key, ErrNegativeDepth)
		}
	}
	return nil
}
