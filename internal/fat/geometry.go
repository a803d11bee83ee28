package fat

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero reports a boot sector field that is used as a
	// divisor but decoded to zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNegativeGeometry reports a derived layout quantity that came out
	// negative, which means the boot sector fields are inconsistent.
	ErrNegativeGeometry = errors.New("negative geometry value")
)

// Geometry describes the derived sector layout of a FAT volume: where the
// FAT copies, the classic root directory region and the data region begin,
// how many sectors each spans, and how many clusters the data region
// holds. On FAT32 volumes the root directory region is empty.
type Geometry struct {
	FATStartSector           int64
	FATSectors               int64
	RootDirectoryStartSector int64
	RootDirectorySectors     int64
	DataStartSector          int64
	DataSectors              int64
	CountOfClusters          int64
}

// GeometryValue is a named layout quantity of a Geometry.
type GeometryValue struct {
	Name  string
	Value int64
}

// Values lists the layout quantities in derivation order.
func (g *Geometry) Values() []GeometryValue {
	return []GeometryValue{
		{"fat_start_sector", g.FATStartSector},
		{"fat_sectors", g.FATSectors},
		{"root_directory_start_sector", g.RootDirectoryStartSector},
		{"root_directory_sectors", g.RootDirectorySectors},
		{"data_start_sector", g.DataStartSector},
		{"data_sectors", g.DataSectors},
		{"count_of_clusters", g.CountOfClusters},
	}
}

// ComputeGeometry derives the sector layout of a FAT volume from its
// decoded boot sector fields. Per the FAT specification, the 16-bit FAT
// size and total sector counts take precedence over their 32-bit
// counterparts whenever they are non-zero. Passing params of a non-FAT
// table fails with ErrUnknownField.
func ComputeGeometry(p *Params) (Geometry, error) {
	var err error
	get := func(name string) int64 {
		v, e := p.Value(name)
		if e != nil && err == nil {
			err = e
		}
		return v
	}

	bytesPerSector := get("bytes_per_sector")
	sectorsPerCluster := get("sectors_per_cluster")
	reservedSectors := get("reserved_sectors_count")
	numberOfFATs := get("number_of_fats")
	rootEntries := get("root_entity_count")
	totalSectors16 := get("total_sectors_16")
	fatSize16 := get("fat_size_16")
	totalSectors32 := get("total_sectors_32")
	fatSize32 := get("fat_size_32")
	if err != nil {
		return Geometry{}, err
	}

	sectorsPerFAT := fallback16(fatSize16, fatSize32)
	totalSectors := fallback16(totalSectors16, totalSectors32)

	if bytesPerSector == 0 {
		return Geometry{}, fmt.Errorf("%w: bytes_per_sector is zero", ErrDivisionByZero)
	}
	if sectorsPerCluster == 0 {
		return Geometry{}, fmt.Errorf("%w: sectors_per_cluster is zero", ErrDivisionByZero)
	}

	var g Geometry
	g.FATStartSector = reservedSectors
	g.FATSectors = numberOfFATs * sectorsPerFAT
	g.RootDirectoryStartSector = g.FATStartSector + g.FATSectors
	g.RootDirectorySectors = (32*rootEntries + bytesPerSector - 1) / bytesPerSector
	g.DataStartSector = g.RootDirectoryStartSector + g.RootDirectorySectors
	g.DataSectors = totalSectors - g.DataStartSector
	g.CountOfClusters = floorDiv(g.DataSectors, sectorsPerCluster)

	for _, q := range g.Values() {
		if q.Value < 0 {
			return Geometry{}, fmt.Errorf("%w: %s = %d", ErrNegativeGeometry, q.Name, q.Value)
		}
	}
	return g, nil
}

// fallback16 applies the precedence rule the FAT32 specification sets for
// the FAT size and total sector counts: the legacy 16-bit field wins
// unless it is zero, which is how FAT32 volumes signal that only the
// 32-bit field carries the count.
func fallback16(v16, v32 int64) int64 {
	if v16 != 0 {
		return v16
	}
	return v32
}

// floorDiv divides a by b rounding toward negative infinity. Go's
// division truncates toward zero, which differs as soon as one operand
// decodes negative.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
