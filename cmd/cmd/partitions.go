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
package cmd

import (
	"fmt"

	"github.com/ostafen/fatprobe/internal/disk"
	"github.com/ostafen/fatprobe/internal/fs"
	"github.com/spf13/cobra"
)

func DefinePartitionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "partitions [<image>]",
		Short:        "Show the MBR partition table of an image file or disk",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         RunPartitions,
	}

	cmd.Flags().StringP("drive", "d", "", "show the partitions of the given drive (e.g. sda or C:)")

	return cmd
}

func RunPartitions(cmd *cobra.Command, args []string) error {
	path, err := sourcePath(cmd, args)
	if err != nil {
		return err
	}

	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image file %q: %w", path, err)
	}
	defer f.Close()

	sector, err := disk.ReadSectorAt(f, 0)
	if err != nil {
		return err
	}

	mbr, err := disk.ParseMBR(sector)
	if err != nil {
		return err
	}

	fmt.Println(mbr.String())
	return nil
}
