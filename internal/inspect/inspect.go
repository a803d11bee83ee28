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
package inspect

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ostafen/fatprobe/internal/disk"
	"github.com/ostafen/fatprobe/internal/env"
	"github.com/ostafen/fatprobe/internal/fat"
	"github.com/ostafen/fatprobe/internal/fs"
	"github.com/ostafen/fatprobe/internal/logger"
	"github.com/ostafen/fatprobe/pkg/dfxml"
	"github.com/ostafen/fatprobe/pkg/sysinfo"
	fmtutil "github.com/ostafen/fatprobe/pkg/util/format"
)

type Options struct {
	Offset     uint64    // byte offset of the boot sector within the source, or within the selected partition
	Partition  int       // 1-based MBR partition number; 0 inspects the source directly
	ReportFile string    // DFXML report path; empty disables the report
	LogLevel   slog.Level
	Out        io.Writer // listing destination; defaults to os.Stdout
}

// Run opens the image file or raw device at path, decodes the boot sector
// selected by the options and prints every field followed, on FAT
// volumes, by the derived layout. When a report file is configured, the
// same values are saved as a DFXML volume entry.
func Run(path string, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	log := logger.New(os.Stderr, opts.LogLevel)

	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image file %q: %w", path, err)
	}
	defer f.Close()

	if osf, ok := f.(*os.File); ok {
		if ssize, err := disk.DeviceSectorSize(osf); err == nil && ssize != disk.DefaultBlocksize {
			log.Warn("device sector size differs from the classic 512 bytes", "sector_size", ssize)
		}
	}

	offset := opts.Offset
	if opts.Partition > 0 {
		p, err := SelectPartition(f, opts.Partition)
		if err != nil {
			return err
		}
		if !p.Type.IsFAT() {
			log.Warn("partition type is not a FAT flavor", "num", p.Num, "type", p.Type.String())
		}
		log.Debug("partition selected", "num", p.Num, "type", p.Type.String(), "offset", p.Offset, "size", p.Size)

		offset += p.Offset
	}

	fmt.Fprintln(out, "[INFO] Starting boot sector inspection...")
	fmt.Fprintf(out, "[INFO] Source: \t%s\n", absPath(path))

	size := sourceSize(f)
	if size > 0 {
		fmt.Fprintf(out, "[INFO] Source size: \t%s\n", fmtutil.FormatBytes(int64(size)))
	}
	if sinfo, err := sysinfo.Stat(); err == nil {
		fmt.Fprintf(out, "[INFO] Host system: \t%s\n", sinfo)
	}
	if offset > 0 {
		fmt.Fprintf(out, "[INFO] Boot sector offset: \t%d\n", offset)
	}

	start := time.Now()

	params, err := Volume(f, offset)
	if err != nil {
		return err
	}

	log.Debug("boot sector decoded", "format", params.Kind().String(), "offset", offset)

	fmt.Fprintf(out, "[INFO] Detected format: \t%s\n", params.Kind())
	fmt.Fprintln(out)

	writeParams(out, params)

	var geom *fat.Geometry
	if params.Kind() == fat.KindFAT {
		g, err := fat.ComputeGeometry(params)
		if err != nil {
			return err
		}
		geom = &g

		fmt.Fprintln(out)
		writeGeometry(out, geom)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "[INFO] Inspection completed!\n")
	fmt.Fprintf(out, "[INFO] Duration: \t%s\n", FormatDurationHMS(time.Since(start)))

	if opts.ReportFile != "" {
		if err := writeReport(opts.ReportFile, path, size, params, geom, offset); err != nil {
			return err
		}
		fmt.Fprintf(out, "[INFO] Report saved to: \t%s\n", absPath(opts.ReportFile))
	}
	return nil
}

// Volume reads and decodes the boot sector found at offset within r. The
// volume format is detected from the sector itself.
func Volume(r io.ReaderAt, offset uint64) (*fat.Params, error) {
	if offset > math.MaxInt64 {
		return nil, fmt.Errorf("offset too large: %d", offset)
	}
	sector, err := disk.ReadSectorAt(r, int64(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to read boot sector at offset %d: %w", offset, err)
	}
	return fat.Decode(fat.DetectKind(sector), sector)
}

// DiscoverPartitions reads the first sector of the source and returns the
// non-empty entries of its MBR partition table.
func DiscoverPartitions(f fs.File) ([]disk.Partition, error) {
	sector, err := disk.ReadSectorAt(f, 0)
	if err != nil {
		return nil, err
	}

	mbr, err := disk.ParseMBR(sector)
	if err != nil {
		return nil, fmt.Errorf("no partition table found: %w", err)
	}
	return mbr.Partitions(), nil
}

// SelectPartition returns the MBR partition with the given 1-based number.
func SelectPartition(f fs.File, num int) (disk.Partition, error) {
	partitions, err := DiscoverPartitions(f)
	if err != nil {
		return disk.Partition{}, err
	}

	for _, p := range partitions {
		if p.Num == num {
			return p, nil
		}
	}
	return disk.Partition{}, fmt.Errorf("no partition %d in table (%d partitions found)", num, len(partitions))
}

// writeParams prints each decoded field as a "name = value" line, in the
// on-disk order of the field table.
func writeParams(w io.Writer, p *fat.Params) {
	for _, f := range p.Fields() {
		v, err := p.Value(f.Name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", f.Name, f.FormatValue(v))
	}
}

// writeGeometry prints the derived layout quantities in derivation order.
func writeGeometry(w io.Writer, g *fat.Geometry) {
	for _, q := range g.Values() {
		fmt.Fprintf(w, "%s = %d\n", q.Name, q.Value)
	}
}

// writeReport saves the decoded params and derived geometry as a DFXML
// volume entry.
func writeReport(reportFile, imagePath string, imageSize uint64, params *fat.Params, geom *fat.Geometry, offset uint64) error {
	outFile, err := os.Create(reportFile)
	if err != nil {
		return err
	}
	defer outFile.Close()

	w := dfxml.NewDFXMLWriter(outFile)

	err = w.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			ImageFilename: imagePath,
			SectorSize:    disk.DefaultBlocksize,
			ImageSize:     imageSize,
		},
	})
	if err != nil {
		return err
	}

	if err := w.WriteVolume(volumeObject(params, geom, offset)); err != nil {
		return err
	}
	return w.Close()
}

// volumeObject flattens the decoded params and derived geometry into a
// DFXML volume entry. When the layout is known, the FAT, root directory
// and data regions are reported as byte runs.
func volumeObject(params *fat.Params, geom *fat.Geometry, offset uint64) dfxml.VolumeObject {
	obj := dfxml.VolumeObject{
		Offset: offset,
		FSType: params.Kind().String(),
	}

	for _, f := range params.Fields() {
		v, err := params.Value(f.Name)
		if err != nil {
			continue
		}
		obj.Params = append(obj.Params, dfxml.Param{Name: f.Name, Value: f.FormatValue(v)})
	}

	if geom == nil {
		return obj
	}

	for _, q := range geom.Values() {
		obj.Params = append(obj.Params, dfxml.Param{Name: q.Name, Value: strconv.FormatInt(q.Value, 10)})
	}

	bps, err := params.Value("bytes_per_sector")
	if err != nil || bps <= 0 {
		return obj
	}

	var runs []dfxml.ByteRun
	addRun := func(startSector, sectors int64) {
		if sectors <= 0 {
			return
		}
		runOffset := uint64(startSector * bps)
		runs = append(runs, dfxml.ByteRun{
			Offset:    runOffset,
			ImgOffset: offset + runOffset,
			Length:    uint64(sectors * bps),
		})
	}

	addRun(geom.FATStartSector, geom.FATSectors)
	addRun(geom.RootDirectoryStartSector, geom.RootDirectorySectors)
	addRun(geom.DataStartSector, geom.DataSectors)

	if len(runs) > 0 {
		obj.ByteRuns = &dfxml.ByteRuns{Runs: runs}
	}
	return obj
}

// sourceSize reports the size in bytes of the inspected source. Block
// devices report a zero Stat size on Linux, so the BLKGETSIZE64 ioctl is
// consulted as a fallback.
func sourceSize(f fs.File) uint64 {
	info, err := f.Stat()
	if err == nil && info.Size() > 0 {
		return uint64(info.Size())
	}

	if osf, ok := f.(*os.File); ok {
		if size, err := disk.DeviceSize(osf); err == nil {
			return size
		}
	}
	return 0
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// FormatDurationHMS formats a time.Duration into HH:MM:SS string.
// It handles durations that might be less than an hour or greater than 24 hours.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
