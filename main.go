// shmup is a vertical space shooter.
//
// Usage:
//
//	shmup play      - Play (default)
//	shmup scores    - Show the high-score table
//	shmup weapons   - Show the weapon catalog
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shmup/prefabs"
	"github.com/milk9111/shmup/scores"
	"github.com/spf13/cobra"
)

var (
	flagDebug      bool
	flagSeed       uint64
	flagWatch      bool
	flagFullscreen bool
	flagMute       bool

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "shmup",
	Short:         "A small vertical shoot 'em up",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "shmup"})
		if flagDebug {
			logger.SetLevel(log.DebugLevel)
		}
		log.SetDefault(logger)
	},
	RunE: runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start the game.

Controls:
  Arrows/WASD  - Move
  Space        - Fire
  P/Esc        - Pause
  Enter        - Restart after game over`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the high-score table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := scores.Open("shmup", logger)
		out := cmd.OutOrStdout()
		entries := store.Entries()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No scores yet.")
			return nil
		}
		fmt.Fprintf(out, "%-4s %8s %8s  %s\n", "RANK", "POINTS", "ENEMIES", "DATE")
		for i, e := range entries {
			fmt.Fprintf(out, "%-4d %8d %8d  %s\n", i+1, e.Points, e.Enemies, e.At.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var weaponsCmd = &cobra.Command{
	Use:   "weapons",
	Short: "Print the weapon catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := prefabs.LoadGameSpec()
		if err != nil {
			return err
		}
		catalog, err := prefabs.LoadWeaponCatalog(spec.Weapons)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s %-6s %6s %6s %8s\n", "TYPE", "LETTER", "DAMAGE", "DELAY", "VELOCITY")
		for _, t := range catalog.Types() {
			def := catalog.Get(t)
			fmt.Fprintf(out, "%-8s %-6s %6.1f %6.2f %8.0f\n", def.Type, def.Letter, def.DamageOnHit, def.DelayBetweenShots, def.Velocity)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug logging and on-screen stats")

	for _, cmd := range []*cobra.Command{rootCmd, playCmd} {
		cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
		cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload prefabs and scripts when they change on disk")
		cmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start in fullscreen")
		cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(weaponsCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	game, err := NewGame(Options{
		Seed:  flagSeed,
		Debug: flagDebug,
		Watch: flagWatch,
		Mute:  flagMute,
	}, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowTitle(game.spec.Title)
	ebiten.SetWindowSize(game.spec.Width, game.spec.Height)
	ebiten.SetFullscreen(flagFullscreen)
	ebiten.SetTPS(game.spec.TPS)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
