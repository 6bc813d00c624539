package domain

import (
	"fmt"
	"regexp"
)

// BuilderKind selects how a domain renders its context.
type BuilderKind string

const (
	// BuilderTable renders gated sections as pipe tables plus appendices.
	BuilderTable BuilderKind = "table"
	// BuilderOutline renders schema metadata as a schema > table > column tree.
	BuilderOutline BuilderKind = "outline"
)

// DefaultAppendixLimit is the number of whole records shown per appendix.
const DefaultAppendixLimit = 30

// Column maps a record field to a table header label.
type Column struct {
	Field string `yaml:"field" json:"field"`
	Label string `yaml:"label" json:"label"`
}

// Section is one primary block of a table-kind context.
//
// A section with a Gate is only emitted when the lowered question matches it.
// Records are filtered on SearchFields and capped at Limit; when nothing
// matches the first Fallback records are used instead. A section without
// SearchFields renders the first Limit records unfiltered.
type Section struct {
	Title        string   `yaml:"title" json:"title"`
	Collection   string   `yaml:"collection" json:"collection"`
	Gate         string   `yaml:"gate,omitempty" json:"gate,omitempty"`
	SearchFields []string `yaml:"search_fields,omitempty" json:"search_fields,omitempty"`
	Limit        int      `yaml:"limit" json:"limit"`
	Fallback     int      `yaml:"fallback,omitempty" json:"fallback,omitempty"`
	Columns      []Column `yaml:"columns" json:"columns"`
}

// Filtered reports whether the section narrows records by question tokens
func (s *Section) Filtered() bool {
	return len(s.SearchFields) > 0
}

// Appendix is a reference collection dumped as whole records when Trigger matches.
type Appendix struct {
	Title      string `yaml:"title" json:"title"`
	Collection string `yaml:"collection" json:"collection"`
	Trigger    string `yaml:"trigger" json:"trigger"`
	Limit      int    `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// Annotation is an optional per-column note line in the outline rendering.
type Annotation struct {
	Field string `yaml:"field" json:"field"`
	Label string `yaml:"label" json:"label"`
}

// OutlineSpec describes the schema metadata tree.
type OutlineSpec struct {
	Title        string       `yaml:"title" json:"title"`
	Collection   string       `yaml:"collection" json:"collection"`
	SearchFields []string     `yaml:"search_fields" json:"search_fields"`
	Limit        int          `yaml:"limit" json:"limit"`
	Fallback     int          `yaml:"fallback" json:"fallback"`
	SchemaField  string       `yaml:"schema_field" json:"schema_field"`
	TableField   string       `yaml:"table_field" json:"table_field"`
	ColumnField  string       `yaml:"column_field" json:"column_field"`
	TypeField    string       `yaml:"type_field" json:"type_field"`
	LengthField  string       `yaml:"length_field" json:"length_field"`
	Annotations  []Annotation `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// BuilderSpec is the declarative context recipe of one domain. Overview
// sections are emitted only when no section and no appendix produced output.
type BuilderSpec struct {
	Kind       BuilderKind  `yaml:"kind" json:"kind"`
	Sections   []Section    `yaml:"sections,omitempty" json:"sections,omitempty"`
	Appendices []Appendix   `yaml:"appendices,omitempty" json:"appendices,omitempty"`
	Overview   []Section    `yaml:"overview,omitempty" json:"overview,omitempty"`
	Outline    *OutlineSpec `yaml:"outline,omitempty" json:"outline,omitempty"`
}

// Collections lists every collection the builder reads, in spec order.
func (b *BuilderSpec) Collections() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	if b.Outline != nil {
		add(b.Outline.Collection)
	}
	for _, s := range b.Sections {
		add(s.Collection)
	}
	for _, a := range b.Appendices {
		add(a.Collection)
	}
	for _, s := range b.Overview {
		add(s.Collection)
	}
	return out
}

// Validate checks limits, column lists and that every regex compiles.
func (b *BuilderSpec) Validate() error {
	switch b.Kind {
	case BuilderOutline:
		o := b.Outline
		if o == nil {
			return fmt.Errorf("%w: outline builder requires an outline block", ErrInvalidInput)
		}
		if o.Collection == "" || o.SchemaField == "" || o.TableField == "" || o.ColumnField == "" {
			return fmt.Errorf("%w: outline requires collection, schema, table and column fields", ErrInvalidInput)
		}
		if o.Limit <= 0 || o.Fallback <= 0 {
			return fmt.Errorf("%w: outline limits must be positive", ErrInvalidInput)
		}
		return nil
	case BuilderTable:
	default:
		return fmt.Errorf("%w: unknown builder kind %q", ErrInvalidInput, b.Kind)
	}

	if len(b.Sections) == 0 && len(b.Appendices) == 0 {
		return fmt.Errorf("%w: table builder has no sections or appendices", ErrInvalidInput)
	}
	for _, s := range append(append([]Section{}, b.Sections...), b.Overview...) {
		if err := s.validate(); err != nil {
			return err
		}
	}
	for _, a := range b.Appendices {
		if a.Title == "" || a.Collection == "" {
			return fmt.Errorf("%w: appendix requires title and collection", ErrInvalidInput)
		}
		if _, err := regexp.Compile(a.Trigger); err != nil || a.Trigger == "" {
			return fmt.Errorf("%w: appendix %q trigger %q", ErrInvalidInput, a.Title, a.Trigger)
		}
		if a.Limit < 0 {
			return fmt.Errorf("%w: appendix %q limit", ErrInvalidInput, a.Title)
		}
	}
	return nil
}

func (s *Section) validate() error {
	if s.Title == "" || s.Collection == "" {
		return fmt.Errorf("%w: section requires title and collection", ErrInvalidInput)
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("%w: section %q has no columns", ErrInvalidInput, s.Title)
	}
	if s.Limit <= 0 {
		return fmt.Errorf("%w: section %q limit must be positive", ErrInvalidInput, s.Title)
	}
	if s.Filtered() && s.Fallback <= 0 {
		return fmt.Errorf("%w: section %q fallback must be positive", ErrInvalidInput, s.Title)
	}
	if s.Gate != "" {
		if _, err := regexp.Compile(s.Gate); err != nil {
			return fmt.Errorf("%w: section %q gate: %v", ErrInvalidInput, s.Title, err)
		}
	}
	return nil
}
