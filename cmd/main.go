package main

import (
	"fmt"

	"github.com/ostafen/fatprobe/cmd/cmd"
	"github.com/ostafen/fatprobe/internal/env"
)

func main() {
	PrintLogo()

	_ = cmd.Execute()
}

func PrintLogo() {
	fmt.Println("  __       _                   _          ")
	fmt.Println(" / _| __ _| |_ _ __  _ __ ___ | |__   ___ ")
	fmt.Println("| |_ / _` | __| '_ \\| '__/ _ \\| '_ \\ / _ \\")
	fmt.Println("|  _| (_| | |_| |_) | | | (_) | |_) |  __/")
	fmt.Println("|_|  \\__,_|\\__| .__/|_|  \\___/|_.__/ \\___|")
	fmt.Println("              |_|                         ")
	fmt.Println()
	fmt.Println("FAT and exFAT boot sector inspection tool")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
