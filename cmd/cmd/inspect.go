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
	"github.com/ostafen/fatprobe/internal/inspect"
	"github.com/ostafen/fatprobe/internal/logger"
	"github.com/ostafen/fatprobe/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "inspect [<image>]",
		Short:        "Inspect the boot sector of an image file or disk",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         RunInspect,
	}

	cmd.Flags().StringP("drive", "d", "", "inspect the given drive (e.g. sda or C:)")
	cmd.Flags().String("offset", "0", "byte offset of the boot sector within the source")
	cmd.Flags().IntP("partition", "p", 0, "inspect the given MBR partition (1-based)")
	cmd.Flags().StringP("output", "o", "", "the path of the DFXML report file")
	cmd.Flags().String("log-level", "INFO", "minimum level of diagnostic messages")

	return cmd
}

func RunInspect(cmd *cobra.Command, args []string) error {
	path, err := sourcePath(cmd, args)
	if err != nil {
		return err
	}

	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	return inspect.Run(path, opts)
}

// sourcePath resolves the source to inspect from either the positional
// image argument or the --drive flag.
func sourcePath(cmd *cobra.Command, args []string) (string, error) {
	drive, _ := cmd.Flags().GetString("drive")

	if drive != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("cannot combine --drive with an image argument")
		}
		return disk.DevicePath(drive), nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("no image file or drive given")
	}
	return disk.NormalizeVolumePath(args[0]), nil
}

func parseOptions(cmd *cobra.Command) (inspect.Options, error) {
	outputFile, _ := cmd.Flags().GetString("output")
	partition, _ := cmd.Flags().GetInt("partition")
	logLevel, _ := cmd.Flags().GetString("log-level")

	offset, err := getBytes(cmd, "offset")
	if err != nil {
		return inspect.Options{}, err
	}

	return inspect.Options{
		Offset:     offset,
		Partition:  partition,
		ReportFile: outputFile,
		LogLevel:   logger.ParseLevel(logLevel),
	}, nil
}

// getBytes parses a size flag. Values may carry a unit suffix, so both
// "1048576" and "1MB" name the same offset.
func getBytes(cmd *cobra.Command, name string) (uint64, error) {
	s, _ := cmd.Flags().GetString(name)

	v, err := format.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid value for --%s: %w", name, err)
	}
	return v, nil
}
