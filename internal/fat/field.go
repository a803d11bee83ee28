// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package fat

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// BootSectorSize is the number of bytes every boot sector field table
// operates on.
const BootSectorSize = 0x200 // 512 bytes

// Kind identifies the boot sector flavor a field table describes.
type Kind uint8

const (
	KindFAT Kind = iota // FAT12, FAT16 and FAT32 share one BPB layout
	KindExFAT
)

func (k Kind) String() string {
	if k == KindExFAT {
		return "exFAT"
	}
	return "FAT"
}

// Encoding tells how a field's raw bytes map to a value. All multi-byte
// encodings are little-endian.
type Encoding uint8

const (
	EncUint8 Encoding = iota
	EncUint16
	EncUint32
	EncUint64
	EncInt8
	EncString // raw ASCII bytes, any length
)

// width returns the byte length a fixed-size encoding occupies,
// or 0 for EncString, which permits any length.
func (e Encoding) width() int {
	switch e {
	case EncUint8, EncInt8:
		return 1
	case EncUint16:
		return 2
	case EncUint32:
		return 4
	case EncUint64:
		return 8
	}
	return 0
}

func (e Encoding) String() string {
	switch e {
	case EncUint8:
		return "u8"
	case EncUint16:
		return "u16"
	case EncUint32:
		return "u32"
	case EncUint64:
		return "u64"
	case EncInt8:
		return "i8"
	case EncString:
		return "string"
	}
	return "unknown"
}

// FieldSpec locates a single field within a boot sector and tells how to
// decode it. Start and End delimit the half-open byte range [Start, End).
type FieldSpec struct {
	Name  string
	Start int
	End   int
	Enc   Encoding
}

// slice returns the raw bytes the field occupies within sector.
func (f FieldSpec) slice(sector []byte) []byte {
	return sector[f.Start:f.End]
}

// decode extracts the field value as a 64-bit pattern. Signed encodings
// are sign-extended, unsigned ones keep their bits unchanged, so a u64
// field survives the int64 reinterpretation losslessly.
func (f FieldSpec) decode(sector []byte) int64 {
	b := f.slice(sector)
	switch f.Enc {
	case EncUint8:
		return int64(b[0])
	case EncUint16:
		return int64(binary.LittleEndian.Uint16(b))
	case EncUint32:
		return int64(binary.LittleEndian.Uint32(b))
	case EncUint64:
		return int64(binary.LittleEndian.Uint64(b))
	case EncInt8:
		return int64(int8(b[0]))
	}
	return 0
}

// FormatValue renders a decoded value according to the field's encoding:
// unsigned fields print over the full unsigned range, signed ones keep
// their sign.
func (f FieldSpec) FormatValue(v int64) string {
	if f.Enc == EncInt8 {
		return strconv.FormatInt(v, 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// Table is the ordered set of field descriptors for one boot sector
// flavor. Iteration order follows the on-disk layout.
type Table struct {
	kind   Kind
	fields []FieldSpec
	index  map[string]int
}

func (t *Table) Kind() Kind { return t.kind }

// Fields returns the field descriptors in table order.
func (t *Table) Fields() []FieldSpec { return t.fields }

// Lookup returns the descriptor of the named field.
func (t *Table) Lookup(name string) (FieldSpec, bool) {
	i, ok := t.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return t.fields[i], true
}

// newTable builds a table and verifies every descriptor: names must be
// unique, ranges must lie within the boot sector, and the range length
// must match the encoding width. Tables hold integer fields only.
func newTable(kind Kind, fields []FieldSpec) (*Table, error) {
	index := make(map[string]int, len(fields))

	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d of %s table has no name", i, kind)
		}
		if _, ok := index[f.Name]; ok {
			return nil, fmt.Errorf("duplicate field %q in %s table", f.Name, kind)
		}
		if f.Start < 0 || f.Start >= f.End || f.End > BootSectorSize {
			return nil, fmt.Errorf("field %q has invalid range [%d:%d)", f.Name, f.Start, f.End)
		}
		w := f.Enc.width()
		if w == 0 {
			return nil, fmt.Errorf("field %q has non-integer encoding %s", f.Name, f.Enc)
		}
		if f.End-f.Start != w {
			return nil, fmt.Errorf("field %q spans %d bytes, encoding %s requires %d",
				f.Name, f.End-f.Start, f.Enc, w)
		}
		index[f.Name] = i
	}

	return &Table{
		kind:   kind,
		fields: fields,
		index:  index,
	}, nil
}

func mustTable(kind Kind, fields []FieldSpec) *Table {
	t, err := newTable(kind, fields)
	if err != nil {
		panic(err)
	}
	return t
}

// fatTable maps the BIOS Parameter Block shared by FAT12, FAT16 and
// FAT32 boot sectors. sectors_per_cluster, number_of_fats and media are
// kept signed so that values such as the 0xF8 fixed-disk media code read
// back as small negative numbers instead of bit patterns.
var fatTable = mustTable(KindFAT, []FieldSpec{
	{Name: "bytes_per_sector", Start: 11, End: 13, Enc: EncUint16},
	{Name: "sectors_per_cluster", Start: 13, End: 14, Enc: EncInt8},
	{Name: "reserved_sectors_count", Start: 14, End: 16, Enc: EncUint16},
	{Name: "number_of_fats", Start: 16, End: 17, Enc: EncInt8},
	{Name: "root_entity_count", Start: 17, End: 19, Enc: EncUint16},
	{Name: "total_sectors_16", Start: 19, End: 21, Enc: EncUint16},
	{Name: "media", Start: 21, End: 22, Enc: EncInt8},
	{Name: "fat_size_16", Start: 22, End: 24, Enc: EncUint16},
	{Name: "sectors_per_track", Start: 24, End: 26, Enc: EncUint16},
	{Name: "number_of_heads", Start: 26, End: 28, Enc: EncUint16},
	{Name: "number_of_hidden_sectors", Start: 28, End: 32, Enc: EncUint32},
	{Name: "total_sectors_32", Start: 32, End: 36, Enc: EncUint32},
	{Name: "fat_size_32", Start: 36, End: 40, Enc: EncUint32},
})

// exfatTable maps the exFAT main boot sector.
var exfatTable = mustTable(KindExFAT, []FieldSpec{
	{Name: "partition_offset", Start: 64, End: 72, Enc: EncUint64},
	{Name: "volume_length", Start: 72, End: 80, Enc: EncUint64},
	{Name: "fat_offset", Start: 80, End: 84, Enc: EncUint32},
	{Name: "fat_length", Start: 84, End: 88, Enc: EncUint32},
	{Name: "cluster_heap_offset", Start: 88, End: 92, Enc: EncUint32},
	{Name: "cluster_count", Start: 92, End: 96, Enc: EncUint32},
	{Name: "first_cluster_of_root_directory", Start: 96, End: 100, Enc: EncUint32},
	{Name: "bytes_per_sector_shift", Start: 108, End: 109, Enc: EncInt8},
	{Name: "sectors_per_cluster_shift", Start: 109, End: 110, Enc: EncInt8},
	{Name: "number_of_fats", Start: 110, End: 111, Enc: EncInt8},
})

// TableFor returns the field table for the given boot sector kind.
func TableFor(kind Kind) *Table {
	if kind == KindExFAT {
		return exfatTable
	}
	return fatTable
}
