// Package resource holds the explicit definition of the News API resource:
// which operations are exposed, which fields are read and written,
// which query filters apply and how many items a page holds.
package resource

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Operation is an HTTP operation that can be enabled on the resource.
type Operation string

const (
	OpGet  Operation = "get"
	OpPost Operation = "post"
	OpPut  Operation = "put"
)

// MatchMode decides how a filter value is compared with the stored field.
type MatchMode string

const (
	// MatchExact compares for equality.
	MatchExact MatchMode = "exact"
	// MatchIPartial is a case-insensitive substring match.
	MatchIPartial MatchMode = "ipartial"
)

// Field names as they appear on the wire.
const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// ErrInvalidConfig is returned when a resource definition fails validation.
var ErrInvalidConfig = errors.New("invalid resource config")

var (
	knownFields    = []string{FieldID, FieldTitle, FieldContent, FieldCreatedAt, FieldUpdatedAt}
	writableFields = []string{FieldTitle, FieldContent}
	filterModes    = map[string][]MatchMode{
		FieldID:    {MatchExact},
		FieldTitle: {MatchExact, MatchIPartial},
	}
)

// Config describes the News resource.
type Config struct {
	ShortName            string               `yaml:"short_name"`
	ItemOperations       []Operation          `yaml:"item_operations"`
	CollectionOperations []Operation          `yaml:"collection_operations"`
	ReadGroup            []string             `yaml:"read_group"`
	WriteGroup           []string             `yaml:"write_group"`
	Filters              map[string]MatchMode `yaml:"filters"`
	ItemsPerPage         int                  `yaml:"items_per_page"`
}

// Default returns the built-in resource definition.
func Default() Config {
	return Config{
		ShortName:            "news",
		ItemOperations:       []Operation{OpGet},
		CollectionOperations: []Operation{OpGet, OpPost},
		ReadGroup:            []string{FieldID, FieldTitle, FieldContent, FieldCreatedAt, FieldUpdatedAt},
		WriteGroup:           []string{FieldTitle, FieldContent},
		Filters: map[string]MatchMode{
			FieldID:    MatchExact,
			FieldTitle: MatchIPartial,
		},
		ItemsPerPage: 1,
	}
}

// Load reads a YAML resource definition from path and overlays it on Default.
// Keys that are absent keep their default value. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read resource config: %w", err)
	}

	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return Config{}, fmt.Errorf("parse resource config: %w", err)
	}

	cfg.merge(file)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.ShortName != "" {
		c.ShortName = o.ShortName
	}
	if o.ItemOperations != nil {
		c.ItemOperations = o.ItemOperations
	}
	if o.CollectionOperations != nil {
		c.CollectionOperations = o.CollectionOperations
	}
	if o.ReadGroup != nil {
		c.ReadGroup = o.ReadGroup
	}
	if o.WriteGroup != nil {
		c.WriteGroup = o.WriteGroup
	}
	if o.Filters != nil {
		c.Filters = o.Filters
	}
	if o.ItemsPerPage != 0 {
		c.ItemsPerPage = o.ItemsPerPage
	}
}

// Validate rejects unknown operations, fields and match modes.
func (c Config) Validate() error {
	if c.ShortName == "" {
		return fmt.Errorf("%w: short_name is required", ErrInvalidConfig)
	}
	if c.ItemsPerPage < 1 {
		return fmt.Errorf("%w: items_per_page must be at least 1, got %d", ErrInvalidConfig, c.ItemsPerPage)
	}
	for _, op := range c.ItemOperations {
		if op != OpGet && op != OpPut {
			return fmt.Errorf("%w: unsupported item operation %q", ErrInvalidConfig, op)
		}
	}
	for _, op := range c.CollectionOperations {
		if op != OpGet && op != OpPost {
			return fmt.Errorf("%w: unsupported collection operation %q", ErrInvalidConfig, op)
		}
	}
	for _, f := range c.ReadGroup {
		if !slices.Contains(knownFields, f) {
			return fmt.Errorf("%w: unknown read field %q", ErrInvalidConfig, f)
		}
	}
	for _, f := range c.WriteGroup {
		if !slices.Contains(writableFields, f) {
			return fmt.Errorf("%w: field %q is not writable", ErrInvalidConfig, f)
		}
	}
	for f, mode := range c.Filters {
		modes, ok := filterModes[f]
		if !ok {
			return fmt.Errorf("%w: field %q cannot be filtered", ErrInvalidConfig, f)
		}
		if !slices.Contains(modes, mode) {
			return fmt.Errorf("%w: match mode %q not supported for %q", ErrInvalidConfig, mode, f)
		}
	}
	return nil
}

// AllowsItem reports whether op is enabled on /{short_name}/{id}.
func (c Config) AllowsItem(op Operation) bool {
	return slices.Contains(c.ItemOperations, op)
}

// AllowsCollection reports whether op is enabled on /{short_name}.
func (c Config) AllowsCollection(op Operation) bool {
	return slices.Contains(c.CollectionOperations, op)
}

// Readable reports whether field belongs to the read group.
func (c Config) Readable(field string) bool {
	return slices.Contains(c.ReadGroup, field)
}

// Writable reports whether field belongs to the write group.
func (c Config) Writable(field string) bool {
	return slices.Contains(c.WriteGroup, field)
}

// FilterMode returns the match mode configured for field.
func (c Config) FilterMode(field string) (MatchMode, bool) {
	mode, ok := c.Filters[field]
	return mode, ok
}

// CollectionPath returns the route prefix, e.g. "/news".
func (c Config) CollectionPath() string {
	return "/" + c.ShortName
}
