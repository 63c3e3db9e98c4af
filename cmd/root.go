package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/portify/portify/scan"
	"github.com/portify/portify/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var debug bool
var packetsPerSecond = scan.DefaultPacketsPerSecond
var graceMS = int(scan.DefaultGracePeriod / time.Millisecond)
var hideProgress bool
var versionRequested bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&versionRequested, "version", "", versionRequested, "Output version information and exit")
	rootCmd.PersistentFlags().BoolVarP(&debug, "verbose", "v", debug, "Enable verbose logging")
	rootCmd.PersistentFlags().IntVarP(&packetsPerSecond, "rate", "r", packetsPerSecond, "Maximum probes per second (0 for unlimited)")
	rootCmd.PersistentFlags().IntVarP(&graceMS, "grace-ms", "g", graceMS, "Time in MS to keep listening for replies after the last probe")
	rootCmd.PersistentFlags().BoolVarP(&hideProgress, "no-progress", "", hideProgress, "Do not display the progress bar")
}

var rootCmd = &cobra.Command{
	Use:   "portify <target> [start-port] [end-port]",
	Short: "Portify is a raw TCP SYN port scanner",
	Long:  `A half-open TCP port scanner: sends SYN probes over a raw socket and reports every port that answers with SYN-ACK.`,
	Args:  cobra.MaximumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {

		if versionRequested {
			v := version.Version
			if v == "" {
				v = "development version"
			}
			fmt.Printf("portify %s\n", v)
			return
		}

		if debug {
			log.SetLevel(log.DebugLevel)
		}

		cfg, err := parseConfig(args)
		if err != nil {
			color.Red("Error: %s", err)
			os.Exit(1)
		}

		if os.Geteuid() > 0 {
			color.Red("Error: Access Denied: You must be a privileged user (root) to send raw SYN probes.")
			os.Exit(1)
		}

		printBanner()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		bar := newProgressBar(cfg.portCount(), !hideProgress)

		scanner := scan.NewSynScanner(packetsPerSecond, time.Duration(graceMS)*time.Millisecond)
		scanner.OnInterface = func(iface scan.Interface) {
			printInterface(iface, cfg)
		}
		scanner.OnProgress = func(port uint16) {
			_ = bar.Add(1)
		}

		log.Debugf("Starting scan of %s ports %d-%d at %d pps", cfg.target, cfg.start, cfg.end, packetsPerSecond)

		result, err := scanner.Scan(ctx, cfg.target, cfg.start, cfg.end)
		_ = bar.Finish()
		fmt.Println()

		if err != nil {
			if !errors.Is(err, context.Canceled) {
				color.Red("Error: %s", err)
				os.Exit(1)
			}
			color.Yellow("Scan interrupted, showing replies received so far.")
		}

		printResult(result)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
