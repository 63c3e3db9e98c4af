package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/portify/portify/scan"
	"github.com/schollz/progressbar/v3"
)

func printBanner() {
	rule := "========================================"
	color.Cyan(rule)
	color.New(color.FgCyan, color.Bold).Println("        PORTIFY: RAW SYN SCANNER        ")
	color.Cyan(rule)
}

func printInterface(iface scan.Interface, cfg scanConfig) {
	fmt.Printf("\nInterface: %s (%s)\n", color.CyanString(iface.Name), iface.IP)
	target := cfg.target.String()
	if cfg.targetName != target {
		target = fmt.Sprintf("%s (%s)", cfg.targetName, target)
	}
	fmt.Printf("Scanning %s ports %d-%d...\n", color.YellowString(target), cfg.start, cfg.end)
}

func newProgressBar(total int, visible bool) *progressbar.ProgressBar {
	if !visible {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Sending probes[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]#[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func printResult(result scan.Result) {
	fmt.Println()
	fmt.Print(result.Render(color.GreenString))
	fmt.Printf("\nScanned %d ports in %s.\n", result.PortsScanned(), result.Elapsed.String())
}
