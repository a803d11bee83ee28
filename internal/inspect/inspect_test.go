package inspect_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/fatprobe/internal/disk"
	"github.com/ostafen/fatprobe/internal/fat"
	"github.com/ostafen/fatprobe/internal/inspect"
	"github.com/ostafen/fatprobe/pkg/dfxml"
	"github.com/stretchr/testify/require"
)

// fat32Sector builds a boot sector describing a small FAT32 volume.
func fat32Sector() []byte {
	b := make([]byte, fat.BootSectorSize)
	copy(b[3:11], "MSDOS5.0")
	binary.LittleEndian.PutUint16(b[11:], 512)     // bytes_per_sector
	b[13] = 4                                      // sectors_per_cluster
	binary.LittleEndian.PutUint16(b[14:], 32)      // reserved_sectors_count
	b[16] = 2                                      // number_of_fats
	b[21] = 0xF8                                   // media
	binary.LittleEndian.PutUint32(b[32:], 2000000) // total_sectors_32
	binary.LittleEndian.PutUint32(b[36:], 1000)    // fat_size_32
	b[510] = 0x55
	b[511] = 0xAA
	return b
}

func exfatSector() []byte {
	b := make([]byte, fat.BootSectorSize)
	copy(b[3:11], "EXFAT   ")
	binary.LittleEndian.PutUint64(b[72:], 1<<30) // volume_length
	binary.LittleEndian.PutUint32(b[80:], 128)   // fat_offset
	b[108] = 9                                   // bytes_per_sector_shift
	b[510] = 0x55
	b[511] = 0xAA
	return b
}

// mbrImage builds a disk image whose first sector is an MBR with a single
// FAT32 partition starting at the given LBA, and boot as the partition's
// first sector.
func mbrImage(startLBA uint32, boot []byte) []byte {
	img := make([]byte, (int64(startLBA)+1)*disk.DefaultBlocksize)

	entry := img[446:]
	entry[4] = byte(disk.PartitionTypeFAT32LBA)
	binary.LittleEndian.PutUint32(entry[8:], startLBA)
	binary.LittleEndian.PutUint32(entry[12:], 4096)
	img[510] = 0x55
	img[511] = 0xAA

	copy(img[int64(startLBA)*disk.DefaultBlocksize:], boot)
	return img
}

func writeImage(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestVolumeAtOffset(t *testing.T) {
	img := make([]byte, 4096)
	copy(img[1024:], fat32Sector())

	p, err := inspect.Volume(bytes.NewReader(img), 1024)
	require.NoError(t, err)
	require.Equal(t, fat.KindFAT, p.Kind())

	v, err := p.Value("total_sectors_32")
	require.NoError(t, err)
	require.Equal(t, int64(2000000), v)
}

func TestVolumeDetectsExFAT(t *testing.T) {
	p, err := inspect.Volume(bytes.NewReader(exfatSector()), 0)
	require.NoError(t, err)
	require.Equal(t, fat.KindExFAT, p.Kind())
}

func TestVolumeShortSource(t *testing.T) {
	_, err := inspect.Volume(bytes.NewReader(make([]byte, 100)), 0)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.ErrorContains(t, err, "failed to read boot sector at offset 0")
}

func TestVolumeOffsetTooLarge(t *testing.T) {
	_, err := inspect.Volume(bytes.NewReader(fat32Sector()), 1<<63)
	require.ErrorContains(t, err, "offset too large")
}

func TestRunFAT32(t *testing.T) {
	path := writeImage(t, fat32Sector())

	var out bytes.Buffer
	require.NoError(t, inspect.Run(path, inspect.Options{Out: &out}))

	listing := out.String()
	require.Contains(t, listing, "Detected format: \tFAT")
	require.Contains(t, listing, "bytes_per_sector = 512\n")
	require.Contains(t, listing, "media = -8\n")
	require.Contains(t, listing, "fat_start_sector = 32\n")
	require.Contains(t, listing, "fat_sectors = 2000\n")
	require.Contains(t, listing, "data_sectors = 1997968\n")
	require.Contains(t, listing, "count_of_clusters = 499492\n")
}

func TestRunExFAT(t *testing.T) {
	path := writeImage(t, exfatSector())

	var out bytes.Buffer
	require.NoError(t, inspect.Run(path, inspect.Options{Out: &out}))

	listing := out.String()
	require.Contains(t, listing, "Detected format: \texFAT")
	require.Contains(t, listing, "volume_length = 1073741824\n")
	require.NotContains(t, listing, "fat_start_sector")
}

func TestRunAtOffset(t *testing.T) {
	img := make([]byte, 8192)
	copy(img[4096:], fat32Sector())
	path := writeImage(t, img)

	var out bytes.Buffer
	require.NoError(t, inspect.Run(path, inspect.Options{Offset: 4096, Out: &out}))

	listing := out.String()
	require.Contains(t, listing, "Boot sector offset: \t4096")
	require.Contains(t, listing, "count_of_clusters = 499492\n")
}

func TestRunPartition(t *testing.T) {
	path := writeImage(t, mbrImage(2048, fat32Sector()))

	var out bytes.Buffer
	require.NoError(t, inspect.Run(path, inspect.Options{Partition: 1, Out: &out}))

	listing := out.String()
	require.Contains(t, listing, "Boot sector offset: \t1048576")
	require.Contains(t, listing, "count_of_clusters = 499492\n")
}

func TestRunPartitionNotFound(t *testing.T) {
	path := writeImage(t, mbrImage(2048, fat32Sector()))

	err := inspect.Run(path, inspect.Options{Partition: 3, Out: io.Discard})
	require.ErrorContains(t, err, "no partition 3")
}

func TestRunMissingImage(t *testing.T) {
	err := inspect.Run(filepath.Join(t.TempDir(), "nope.img"), inspect.Options{Out: io.Discard})
	require.ErrorContains(t, err, "failed to open image file")
}

func TestRunBadGeometry(t *testing.T) {
	boot := fat32Sector()
	binary.LittleEndian.PutUint16(boot[11:], 0) // zero out bytes_per_sector
	path := writeImage(t, boot)

	err := inspect.Run(path, inspect.Options{Out: io.Discard})
	require.ErrorIs(t, err, fat.ErrDivisionByZero)
}

func TestRunWritesReport(t *testing.T) {
	path := writeImage(t, fat32Sector())
	reportFile := filepath.Join(t.TempDir(), "report.xml")

	var out bytes.Buffer
	require.NoError(t, inspect.Run(path, inspect.Options{ReportFile: reportFile, Out: &out}))
	require.Contains(t, out.String(), "Report saved to:")

	f, err := os.Open(reportFile)
	require.NoError(t, err)
	defer f.Close()

	volumes, err := dfxml.ReadVolumes(f)
	require.NoError(t, err)
	require.Len(t, volumes, 1)

	vol := volumes[0]
	require.Equal(t, uint64(0), vol.Offset)
	require.Equal(t, "FAT", vol.FSType)
	require.Contains(t, vol.Params, dfxml.Param{Name: "bytes_per_sector", Value: "512"})
	require.Contains(t, vol.Params, dfxml.Param{Name: "media", Value: "-8"})
	require.Contains(t, vol.Params, dfxml.Param{Name: "count_of_clusters", Value: "499492"})

	// FAT32 has an empty root directory region, leaving the FAT and data runs
	require.NotNil(t, vol.ByteRuns)
	require.Len(t, vol.ByteRuns.Runs, 2)
	require.Equal(t, dfxml.ByteRun{Offset: 16384, ImgOffset: 16384, Length: 1024000}, vol.ByteRuns.Runs[0])
	require.Equal(t, uint64(2032*512), vol.ByteRuns.Runs[1].Offset)
}

func TestDiscoverPartitions(t *testing.T) {
	path := writeImage(t, mbrImage(2048, fat32Sector()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	partitions, err := inspect.DiscoverPartitions(f)
	require.NoError(t, err)
	require.Len(t, partitions, 1)

	p := partitions[0]
	require.Equal(t, 1, p.Num)
	require.Equal(t, disk.PartitionTypeFAT32LBA, p.Type)
	require.Equal(t, uint64(2048*512), p.Offset)
}

func TestDiscoverPartitionsNoTable(t *testing.T) {
	path := writeImage(t, make([]byte, 512)) // no boot signature

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = inspect.DiscoverPartitions(f)
	require.ErrorContains(t, err, "no partition table found")
}
