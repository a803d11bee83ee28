package fat_test

import (
	"encoding/binary"
	"testing"

	"github.com/ostafen/fatprobe/internal/fat"
	"github.com/stretchr/testify/require"
)

// newFATSector builds a blank FAT boot sector carrying a DOS OEM name and
// the 0xAA55 end marker. set, when given, patches the raw bytes.
func newFATSector(set func(b []byte)) []byte {
	b := make([]byte, fat.BootSectorSize)
	copy(b[3:11], "MSDOS5.0")
	b[510] = 0x55
	b[511] = 0xAA
	if set != nil {
		set(b)
	}
	return b
}

// newExFATSector builds a blank exFAT main boot sector.
func newExFATSector(set func(b []byte)) []byte {
	b := make([]byte, fat.BootSectorSize)
	copy(b[3:11], "EXFAT   ")
	b[510] = 0x55
	b[511] = 0xAA
	if set != nil {
		set(b)
	}
	return b
}

// bpb carries the classic BIOS Parameter Block fields of a FAT boot
// sector in declaration order.
type bpb struct {
	bytesPerSector    uint16
	sectorsPerCluster byte
	reservedSectors   uint16
	numberOfFATs      byte
	rootEntries       uint16
	totalSectors16    uint16
	media             byte
	fatSize16         uint16
	sectorsPerTrack   uint16
	numberOfHeads     uint16
	hiddenSectors     uint32
	totalSectors32    uint32
	fatSize32         uint32
}

func (c bpb) sector() []byte {
	return newFATSector(func(b []byte) {
		binary.LittleEndian.PutUint16(b[11:], c.bytesPerSector)
		b[13] = c.sectorsPerCluster
		binary.LittleEndian.PutUint16(b[14:], c.reservedSectors)
		b[16] = c.numberOfFATs
		binary.LittleEndian.PutUint16(b[17:], c.rootEntries)
		binary.LittleEndian.PutUint16(b[19:], c.totalSectors16)
		b[21] = c.media
		binary.LittleEndian.PutUint16(b[22:], c.fatSize16)
		binary.LittleEndian.PutUint16(b[24:], c.sectorsPerTrack)
		binary.LittleEndian.PutUint16(b[26:], c.numberOfHeads)
		binary.LittleEndian.PutUint32(b[28:], c.hiddenSectors)
		binary.LittleEndian.PutUint32(b[32:], c.totalSectors32)
		binary.LittleEndian.PutUint32(b[36:], c.fatSize32)
	})
}

func TestDecodeRejectsWrongSectorSize(t *testing.T) {
	for _, size := range []int{0, 1, 511, 513, 1024} {
		_, err := fat.Decode(fat.KindFAT, make([]byte, size))
		require.ErrorIs(t, err, fat.ErrTruncatedSector, "size %d", size)

		_, err = fat.Decode(fat.KindExFAT, make([]byte, size))
		require.ErrorIs(t, err, fat.ErrTruncatedSector, "size %d", size)
	}
}

func TestDecodeFAT(t *testing.T) {
	sector := bpb{
		bytesPerSector:    512,
		sectorsPerCluster: 4,
		reservedSectors:   32,
		numberOfFATs:      2,
		rootEntries:       512,
		totalSectors16:    0,
		media:             0xF8,
		fatSize16:         0,
		sectorsPerTrack:   63,
		numberOfHeads:     255,
		hiddenSectors:     2048,
		totalSectors32:    2000000,
		fatSize32:         1000,
	}.sector()

	p, err := fat.Decode(fat.KindFAT, sector)
	require.NoError(t, err)
	require.Equal(t, fat.KindFAT, p.Kind())

	checkValue := func(name string, want int64) {
		v, err := p.Value(name)
		require.NoError(t, err)
		require.Equal(t, want, v, "field %q", name)
	}

	checkValue("bytes_per_sector", 512)
	checkValue("sectors_per_cluster", 4)
	checkValue("reserved_sectors_count", 32)
	checkValue("number_of_fats", 2)
	checkValue("root_entity_count", 512)
	checkValue("total_sectors_16", 0)
	checkValue("media", -8) // 0xF8 read back signed
	checkValue("fat_size_16", 0)
	checkValue("sectors_per_track", 63)
	checkValue("number_of_heads", 255)
	checkValue("number_of_hidden_sectors", 2048)
	checkValue("total_sectors_32", 2000000)
	checkValue("fat_size_32", 1000)
}

func TestDecodeSignExtension(t *testing.T) {
	sector := bpb{sectorsPerCluster: 0x80, numberOfFATs: 0xFF, media: 0xF0}.sector()

	p, err := fat.Decode(fat.KindFAT, sector)
	require.NoError(t, err)

	v, err := p.Value("sectors_per_cluster")
	require.NoError(t, err)
	require.Equal(t, int64(-128), v)

	v, err = p.Value("number_of_fats")
	require.NoError(t, err)
	require.Equal(t, int64(-1), v)

	v, err = p.Value("media")
	require.NoError(t, err)
	require.Equal(t, int64(-16), v)
}

func TestDecodeExFAT(t *testing.T) {
	sector := newExFATSector(func(b []byte) {
		binary.LittleEndian.PutUint64(b[64:], 2048)
		binary.LittleEndian.PutUint64(b[72:], 1<<40)
		binary.LittleEndian.PutUint32(b[80:], 128)
		binary.LittleEndian.PutUint32(b[84:], 512)
		binary.LittleEndian.PutUint32(b[88:], 1024)
		binary.LittleEndian.PutUint32(b[92:], 65536)
		binary.LittleEndian.PutUint32(b[96:], 5)
		b[108] = 9
		b[109] = 4
		b[110] = 1
	})

	p, err := fat.Decode(fat.KindExFAT, sector)
	require.NoError(t, err)
	require.Equal(t, fat.KindExFAT, p.Kind())

	checkValue := func(name string, want int64) {
		v, err := p.Value(name)
		require.NoError(t, err)
		require.Equal(t, want, v, "field %q", name)
	}

	checkValue("partition_offset", 2048)
	checkValue("volume_length", 1<<40)
	checkValue("fat_offset", 128)
	checkValue("fat_length", 512)
	checkValue("cluster_heap_offset", 1024)
	checkValue("cluster_count", 65536)
	checkValue("first_cluster_of_root_directory", 5)
	checkValue("bytes_per_sector_shift", 9)
	checkValue("sectors_per_cluster_shift", 4)
	checkValue("number_of_fats", 1)
}

func TestDecodeExFATFullRange(t *testing.T) {
	// u64 fields must survive values above 1<<63
	sector := newExFATSector(func(b []byte) {
		binary.LittleEndian.PutUint64(b[72:], ^uint64(0))
	})

	p, err := fat.Decode(fat.KindExFAT, sector)
	require.NoError(t, err)

	v, err := p.Value("volume_length")
	require.NoError(t, err)

	spec, ok := fat.TableFor(fat.KindExFAT).Lookup("volume_length")
	require.True(t, ok)
	require.Equal(t, "18446744073709551615", spec.FormatValue(v))
}

func TestParamsUnknownField(t *testing.T) {
	p, err := fat.Decode(fat.KindFAT, newFATSector(nil))
	require.NoError(t, err)

	_, err = p.Value("no_such_field")
	require.ErrorIs(t, err, fat.ErrUnknownField)

	// exFAT-only names are unknown to a FAT table
	_, err = p.Value("volume_length")
	require.ErrorIs(t, err, fat.ErrUnknownField)
}

func TestParamsFieldsOrder(t *testing.T) {
	p, err := fat.Decode(fat.KindFAT, newFATSector(nil))
	require.NoError(t, err)

	fields := p.Fields()
	require.Equal(t, "bytes_per_sector", fields[0].Name)
	require.Equal(t, "fat_size_32", fields[len(fields)-1].Name)
}
