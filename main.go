package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	configFlag    string
	busNameFlag   string
	colorFlag     string
	noArtworkFlag bool
)

// debugf prints diagnostics to stderr when SPOTARGOS_DEBUG=1. Stdout is
// reserved for markup.
func debugf(format string, args ...interface{}) {
	if os.Getenv("SPOTARGOS_DEBUG") == "1" {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spotargos",
	Short: "Spotify now-playing markup for Argos-style status bars",
	Long: "spotargos reads the current track from the local Spotify client over\n" +
		"the D-Bus session bus and prints Argos/BitBar markup: a ticker line,\n" +
		"track details, clickable transport controls and the album art.\n\n" +
		"Run it from the bar host every interval, or try `spotargos watch` for\n" +
		"an interactive terminal view.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		initConfig()
		cfg := config.Get()

		player, err := NewPlayer(cfg.Player.BusName)
		if err != nil {
			// Render the failure instead of exiting nonzero: a broken pipe
			// to the bus should show up in the bar, not blank it.
			w := NewWriter(os.Stdout)
			writeError(w, cfg, err)
			return w.Err()
		}
		defer player.Close()

		return renderStatus(os.Stdout, player, cfg)
	},
}

var ctlCmd = &cobra.Command{
	Use:       "ctl <command>",
	Short:     "Send a transport command to the player",
	Long:      "Available commands: " + strings.Join(commandNames(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: commandNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ParseCommand(args[0])
		if err != nil {
			return err
		}

		initConfig()
		cfg := config.Get()

		player, err := NewPlayer(cfg.Player.BusName)
		if err != nil {
			return err
		}
		defer player.Close()

		return player.Control(c)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive now-playing view in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		initConfig()
		cfg := config.Get()

		player, err := NewPlayer(cfg.Player.BusName)
		if err != nil {
			return err
		}
		defer player.Close()

		return runWatch(player)
	},
}

func commandNames() []string {
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = string(c)
	}
	return names
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&busNameFlag, "bus-name", "", "Well-known MPRIS bus name of the player")
	rootCmd.Flags().StringVar(&colorFlag, "color", "", "Fixed accent color for the ticker line")
	rootCmd.Flags().BoolVar(&noArtworkFlag, "no-artwork", false, "Disable album artwork")
	rootCmd.AddCommand(ctlCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
