package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

type compiledSection struct {
	domain.Section
	gate *regexp.Regexp
}

type compiledAppendix struct {
	domain.Appendix
	trigger *regexp.Regexp
}

// contextBuilder is a domain's BuilderSpec with its regular expressions compiled.
type contextBuilder struct {
	id         domain.DomainID
	name       string
	kind       domain.BuilderKind
	sections   []compiledSection
	appendices []compiledAppendix
	overview   []domain.Section
	outline    *domain.OutlineSpec
}

func compileBuilder(d *domain.Domain) (*contextBuilder, error) {
	spec := d.Builder
	b := &contextBuilder{
		id:       d.ID,
		name:     d.Name,
		kind:     spec.Kind,
		overview: spec.Overview,
		outline:  spec.Outline,
	}
	for _, s := range spec.Sections {
		cs := compiledSection{Section: s}
		if s.Gate != "" {
			re, err := regexp.Compile(s.Gate)
			if err != nil {
				return nil, fmt.Errorf("%s section %q gate: %w", d.ID, s.Title, err)
			}
			cs.gate = re
		}
		b.sections = append(b.sections, cs)
	}
	for _, a := range spec.Appendices {
		re, err := regexp.Compile(a.Trigger)
		if err != nil {
			return nil, fmt.Errorf("%s appendix %q trigger: %w", d.ID, a.Title, err)
		}
		if a.Limit == 0 {
			a.Limit = domain.DefaultAppendixLimit
		}
		b.appendices = append(b.appendices, compiledAppendix{Appendix: a, trigger: re})
	}
	return b, nil
}

// build renders the domain context from one dataset snapshot. It never
// fails: missing collections render as empty tables.
func (b *contextBuilder) build(ds *domain.Dataset, question string) string {
	tokens := Tokenize(question, BuilderMinLen)
	if b.kind == domain.BuilderOutline {
		return b.buildOutline(ds, tokens)
	}

	var sb strings.Builder
	blocks := 0

	for _, s := range b.sections {
		if s.gate != nil && !s.gate.MatchString(tokens.Lower) {
			continue
		}
		if blocks > 0 {
			sb.WriteString("\n")
		}
		table := ds.Table(s.Collection)
		rows := selectRecords(table, &s.Section, tokens)
		sb.WriteString(sectionHeader(s.Title, len(rows), table.Len()))
		sb.WriteString(RenderTable(rows, s.Columns))
		blocks++
	}

	for _, a := range b.appendices {
		if !a.trigger.MatchString(tokens.Lower) {
			continue
		}
		sb.WriteString(RenderAppendix(a.Title, ds.Table(a.Collection), a.Limit))
		blocks++
	}

	if blocks == 0 {
		for i, s := range b.overview {
			if i > 0 {
				sb.WriteString("\n")
			}
			table := ds.Table(s.Collection)
			rows := table.Head(s.Limit)
			sb.WriteString(overviewHeader(s.Title, len(rows), table.Len()))
			sb.WriteString(RenderTable(rows, s.Columns))
		}
	}

	return sb.String()
}

// selectRecords applies the section's keyword filter and truncation policy.
func selectRecords(table *domain.Table, s *domain.Section, tokens Tokens) []domain.Record {
	if !s.Filtered() {
		return table.Head(s.Limit)
	}
	matched := FilterRecords(table.Records, s.SearchFields, tokens, s.Limit)
	if len(matched) == 0 {
		return table.Head(s.Fallback)
	}
	return matched
}

// FilterRecords returns, in record order, up to limit records where any token
// is a case-insensitive substring of any of the given fields.
func FilterRecords(records []domain.Record, fields []string, tokens Tokens, limit int) []domain.Record {
	if tokens.Empty() || limit <= 0 {
		return nil
	}
	var out []domain.Record
	values := make([]string, len(fields))
	for _, r := range records {
		for i, f := range fields {
			values[i] = r.Text(f)
		}
		if tokens.MatchesAny(strings.ToLower(strings.Join(values, " "))) {
			out = append(out, r)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

type outlineTable struct {
	name    string
	columns []domain.Record
}

type outlineSchema struct {
	name   string
	tables []*outlineTable
	index  map[string]*outlineTable
}

// buildOutline renders schema metadata grouped schema > table > column in
// first-seen order.
func (b *contextBuilder) buildOutline(ds *domain.Dataset, tokens Tokens) string {
	o := b.outline
	table := ds.Table(o.Collection)

	rows := FilterRecords(table.Records, o.SearchFields, tokens, o.Limit)
	if len(rows) == 0 {
		rows = table.Head(o.Fallback)
	}

	var schemas []*outlineSchema
	bySchema := make(map[string]*outlineSchema)
	for _, r := range rows {
		sName := r.Display(o.SchemaField)
		s, ok := bySchema[sName]
		if !ok {
			s = &outlineSchema{name: sName, index: make(map[string]*outlineTable)}
			bySchema[sName] = s
			schemas = append(schemas, s)
		}
		tName := r.Display(o.TableField)
		t, ok := s.index[tName]
		if !ok {
			t = &outlineTable{name: tName}
			s.index[tName] = t
			s.tables = append(s.tables, t)
		}
		t.columns = append(t.columns, r)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== %s (%d of %d records) ===\n\n", o.Title, len(rows), table.Len())
	for _, s := range schemas {
		fmt.Fprintf(&sb, "Schema: %s\n", s.name)
		for _, t := range s.tables {
			fmt.Fprintf(&sb, "  Table: %s\n", t.name)
			for _, col := range t.columns {
				dataType := col.Display(o.TypeField)
				if o.LengthField != "" && col.Truthy(o.LengthField) {
					dataType += "(" + col.Text(o.LengthField) + ")"
				}
				fmt.Fprintf(&sb, "    - %s (%s)\n", col.Display(o.ColumnField), dataType)
				for _, a := range o.Annotations {
					if col.Truthy(a.Field) {
						fmt.Fprintf(&sb, "      %s: %s\n", a.Label, col.Text(a.Field))
					}
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
