package fat

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedSector reports a boot sector buffer whose length is not
	// exactly BootSectorSize.
	ErrTruncatedSector = errors.New("truncated boot sector")

	// ErrUnknownField reports a field name absent from the table.
	ErrUnknownField = errors.New("unknown boot sector field")
)

// Params holds the decoded field values of one boot sector, in the order
// of the table they were decoded with.
type Params struct {
	table  *Table
	values []int64
}

// Decode extracts every field of the table matching kind from a raw boot
// sector. The sector must be exactly BootSectorSize bytes: shorter buffers
// cannot hold the full table, longer ones were not cut at a sector
// boundary and would silently shift every offset on a resliced source.
func Decode(kind Kind, sector []byte) (*Params, error) {
	if len(sector) != BootSectorSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes",
			ErrTruncatedSector, BootSectorSize, len(sector))
	}

	t := TableFor(kind)

	values := make([]int64, len(t.fields))
	for i, f := range t.fields {
		values[i] = f.decode(sector)
	}
	return &Params{table: t, values: values}, nil
}

// Kind reports which table the params were decoded with.
func (p *Params) Kind() Kind { return p.table.kind }

// Fields returns the field descriptors in table order.
func (p *Params) Fields() []FieldSpec { return p.table.Fields() }

// Value returns the decoded value of the named field.
func (p *Params) Value(name string) (int64, error) {
	i, ok := p.table.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return p.values[i], nil
}
