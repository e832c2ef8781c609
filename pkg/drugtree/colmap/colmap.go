// Package colmap describes which columns of a sheet hold which medicine
// field, and how multi-column fields combine into one value.
package colmap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// NoteDelimiter joins note fragments spread across several columns.
const NoteDelimiter = "；"

// Kind selects how a Field reads its columns.
type Kind int

const (
	// FirstNonEmpty scans Columns in order and takes the first
	// non-empty cleaned value.
	FirstNonEmpty Kind = iota
	// Single reads a single column.
	Single
	// List collects the non-empty cleaned values of all Columns.
	List
	// Join concatenates the non-empty cleaned values of all Columns
	// with Delim.
	Join
)

// Field describes where one medicine field lives in a sheet's rows.
type Field struct {
	Kind    Kind
	Columns []int
	Delim   string
}

// Value extracts the field's scalar value from row. Columns past the
// row's length read as empty.
func (f *Field) Value(row []string) string {
	switch f.Kind {
	case FirstNonEmpty:
		for _, i := range f.Columns {
			if v := strings.TrimSpace(cell(row, i)); v != "" {
				return v
			}
		}
		return ""
	case Join:
		var parts []string
		for _, i := range f.Columns {
			if v := strings.TrimSpace(cell(row, i)); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, f.Delim)
	default:
		if len(f.Columns) == 0 {
			return ""
		}
		return strings.TrimSpace(cell(row, f.Columns[0]))
	}
}

// Values extracts the non-empty cleaned values of a List field in
// column order. The result is never nil.
func (f *Field) Values(row []string) []string {
	out := []string{}
	for _, i := range f.Columns {
		if v := strings.TrimSpace(cell(row, i)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Map holds the resolved field layout for one sheet. A nil field means
// the sheet does not carry that field.
type Map struct {
	Name            *Field
	Dosage          *Field
	PaymentStandard *Field
	Note            *Field
	ValidityPeriod  *Field
}

// Table maps sheet name to its column layout.
type Table map[string]Map

// For returns the layout for a sheet. Unknown sheets get a zero Map,
// under which no row resolves to a medicine.
func (t Table) For(sheet string) (Map, bool) {
	m, ok := t[sheet]
	return m, ok
}

func agreementMap() Map {
	return Map{
		Name:            &Field{Kind: FirstNonEmpty, Columns: []int{12, 13}},
		PaymentStandard: &Field{Kind: List, Columns: []int{14, 15, 16}},
		Note:            &Field{Kind: Single, Columns: []int{17}},
		ValidityPeriod:  &Field{Kind: Single, Columns: []int{18}},
	}
}

// Default returns the built-in layouts for the five known sheet types
// of the national drug list workbook.
func Default() Table {
	return Table{
		"西药部分": {
			Name:   &Field{Kind: FirstNonEmpty, Columns: []int{13, 14}},
			Dosage: &Field{Kind: Single, Columns: []int{15}},
			Note:   &Field{Kind: Single, Columns: []int{17}},
		},
		"中成药部分": {
			Name: &Field{Kind: FirstNonEmpty, Columns: []int{13, 14, 15}},
			Note: &Field{Kind: Join, Columns: []int{16, 17, 18}, Delim: NoteDelimiter},
		},
		"协议西药":   agreementMap(),
		"协议中成药":  agreementMap(),
		"竞价药品部分": agreementMap(),
	}
}

// columnSpec accepts either a scalar column index or a sequence of
// indices in YAML, mirroring the two field shapes.
type columnSpec struct {
	cols   []int
	single bool
}

func (c *columnSpec) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var i int
		if err := n.Decode(&i); err != nil {
			return err
		}
		c.cols = []int{i}
		c.single = true
		return nil
	case yaml.SequenceNode:
		if err := n.Decode(&c.cols); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("line %d: column spec must be an index or a list of indices", n.Line)
	}
}

// sheetSpec is the on-disk YAML layout for one sheet.
type sheetSpec struct {
	Name            *columnSpec `yaml:"name"`
	Dosage          *columnSpec `yaml:"dosage"`
	PaymentStandard *columnSpec `yaml:"payment_standard"`
	Note            *columnSpec `yaml:"note"`
	ValidityPeriod  *columnSpec `yaml:"validity_period"`
}

func (s sheetSpec) resolve() (Map, error) {
	var m Map
	var err error
	if m.Name, err = s.Name.field("name", FirstNonEmpty); err != nil {
		return Map{}, err
	}
	if m.Dosage, err = s.Dosage.field("dosage", Single); err != nil {
		return Map{}, err
	}
	if m.PaymentStandard, err = s.PaymentStandard.field("payment_standard", List); err != nil {
		return Map{}, err
	}
	// A scalar note column reads a single cell; a list of note columns
	// joins the non-empty cells.
	noteKind := Join
	if s.Note != nil && s.Note.single {
		noteKind = Single
	}
	if m.Note, err = s.Note.field("note", noteKind); err != nil {
		return Map{}, err
	}
	if m.ValidityPeriod, err = s.ValidityPeriod.field("validity_period", Single); err != nil {
		return Map{}, err
	}
	return m, nil
}

// field converts a parsed column spec into a resolved Field.
// A nil spec resolves to a nil field (the sheet lacks that field).
func (c *columnSpec) field(name string, kind Kind) (*Field, error) {
	if c == nil {
		return nil, nil
	}
	for _, i := range c.cols {
		if i < 0 {
			return nil, fmt.Errorf("field %q: negative column index %d", name, i)
		}
	}
	f := &Field{Kind: kind, Columns: c.cols}
	if kind == Join {
		f.Delim = NoteDelimiter
	}
	return f, nil
}

// Load reads a YAML file of sheet-name → field → column indices and
// merges it over the built-in table. A sheet named in the file replaces
// the built-in layout for that sheet entirely.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read column map: %w", err)
	}
	var specs map[string]sheetSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse column map: %w", err)
	}
	table := Default()
	for sheet, spec := range specs {
		m, err := spec.resolve()
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		table[sheet] = m
	}
	return table, nil
}
