package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "fatprobe"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - FAT and exFAT boot sector inspection tool",
	}

	rootCmd.AddCommand(DefineInspectCommand())
	rootCmd.AddCommand(DefineFieldsCommand())
	rootCmd.AddCommand(DefinePartitionsCommand())

	return rootCmd.Execute()
}
