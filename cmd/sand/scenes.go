package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/sandbox"
	"github.com/vovakirdan/tui-sand/internal/sim"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List saved scenes",
	Long: `Display every scene slot in the database, most recently saved first.

Examples:
  sand scenes
  sand scenes --db ./scenes.db`,
	Args: cobra.NoArgs,
	RunE: runScenes,
}

var exportCmd = &cobra.Command{
	Use:   "export <slot> <file>",
	Short: "Write a saved scene to a file",
	Long: `Write a scene slot to a file. Files ending in .png get an image of the
grid; anything else gets the JSON scene payload.

Examples:
  sand export quicksave garden.json
  sand export quicksave garden.png`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

var (
	flagImportWidth  int
	flagImportHeight int
)

var importCmd = &cobra.Command{
	Use:   "import <file> [slot]",
	Short: "Save a JSON scene file into a slot",
	Long: `Validate a JSON scene payload against the configured grid size and store
it under a slot (default: the file name without extension).

Examples:
  sand import garden.json
  sand import garden.json quicksave
  sand import big.json --width 320 --height 200`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().IntVar(&flagImportWidth, "width", 0, "Expected grid width (0 = config value)")
	importCmd.Flags().IntVar(&flagImportHeight, "height", 0, "Expected grid height (0 = config value)")
}

// openStore loads the config and opens the scene database.
func openStore() (config.SandboxConfig, *storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, err
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, store, nil
}

func runScenes(cmd *cobra.Command, _ []string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.ListScenes()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No saved scenes yet.")
		return nil
	}

	maxName := 4 // "Name" header
	for _, s := range list {
		maxName = max(maxName, len(s.Name))
	}

	fmt.Fprintf(out, "  %-*s  %-18s  %-9s  %9s  %s\n", maxName, "Name", "Preset", "Size", "Particles", "Saved")
	fmt.Fprintf(out, "  %-*s  %-18s  %-9s  %9s  %s\n", maxName, "----", "------", "----", "---------", "-----")
	for _, s := range list {
		fmt.Fprintf(out, "  %-*s  %-18s  %-9s  %9d  %s\n",
			maxName, s.Name, s.Preset, fmt.Sprintf("%dx%d", s.Width, s.Height),
			s.Particles, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n  %d scenes, %d particles stored\n", stats.Scenes, stats.TotalParticles)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	slot, path := args[0], args[1]

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Scene(slot)
	if err != nil {
		return err
	}

	data := rec.Payload
	if strings.EqualFold(filepath.Ext(path), ".png") {
		g, err := sim.Hydrate(rec.Payload, rec.Width, rec.Height)
		if err != nil {
			return err
		}
		if data, err = sandbox.EncodePNG(g, sandbox.ImageScale); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %q (%dx%d, %d particles) to %s\n",
		slot, rec.Width, rec.Height, rec.Particles, path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	slot := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(args) == 2 {
		slot = args[1]
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	width, height := flagImportWidth, flagImportHeight
	if width <= 0 {
		width = cfg.Grid.Width
	}
	if height <= 0 {
		height = cfg.Grid.Height
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("grid size is fitted to the terminal; pass --width and --height")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	g, err := sim.Hydrate(data, width, height)
	if err != nil {
		return err
	}

	info, err := store.SaveScene(slot, "import", g)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into %q (%dx%d, %d particles)\n",
		path, info.Name, info.Width, info.Height, info.Particles)
	return nil
}
