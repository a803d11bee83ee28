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
	"os"
	"text/tabwriter"

	"github.com/ostafen/fatprobe/internal/fat"
	"github.com/spf13/cobra"
)

func DefineFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List all decoded boot sector fields",
		Long: `The 'fields' command displays a table of every boot sector field the inspector decodes.
Each field includes the volume format it belongs to, its byte range within the boot sector, and its encoding.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFields,
	}
	return cmd
}

func RunFields(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FORMAT\tNAME\tRANGE\tENCODING")

	for _, kind := range []fat.Kind{fat.KindFAT, fat.KindExFAT} {
		for _, f := range fat.TableFor(kind).Fields() {
			fmt.Fprintf(w, "%s\t%s\t[%d:%d)\t%s\n",
				kind,
				f.Name,
				f.Start, f.End,
				f.Enc,
			)
		}
	}
	return w.Flush()
}
