// Command tiles inspects and rewrites tile files without opening the game.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/platformer/tile"
	"github.com/milk9111/platformer/tilemap"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tiles",
		Short:        "Inspect and rewrite platformer tile files",
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(), newValidateCmd(), newArchetypeCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "Print every record of a tile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles, rep, err := readTiles(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, t := range tiles {
				fmt.Fprintf(out, "%d\t%s\n", i, strings.Join(tilemap.Record(t), "\t"))
			}
			fmt.Fprintf(out, "%d tiles, %d dropped\n", rep.Accepted, len(rep.Dropped))
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Report records the game would drop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, rep, err := readTiles(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range rep.Dropped {
				fmt.Fprintf(out, "%s:%d: malformed record\n", args[0], line)
			}
			if len(rep.Dropped) > 0 {
				return fmt.Errorf("%s: %d of %d records dropped", args[0], len(rep.Dropped), rep.Accepted+len(rep.Dropped))
			}
			fmt.Fprintf(out, "%s: %d records ok\n", args[0], rep.Accepted)
			return nil
		},
	}
}

func newArchetypeCmd() *cobra.Command {
	var (
		tag   string
		name  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "archetype <file>",
		Short: "Apply a preset to every tile with a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ok := tile.ArchetypeByName(name)
			if !ok {
				return fmt.Errorf("unknown archetype %q", name)
			}
			tiles, rep, err := readTiles(args[0])
			if err != nil {
				return err
			}
			if len(rep.Dropped) > 0 && !force {
				return fmt.Errorf("%s: %d malformed lines would be lost on rewrite (lines %v), use --force to drop them", args[0], len(rep.Dropped), rep.Dropped)
			}
			n := applyArchetype(tiles, tag, a)
			if err := writeTiles(args[0], tiles); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tiles set to %s\n", args[0], n, a.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "tag of the tiles to rewrite")
	cmd.Flags().StringVar(&name, "as", "", "archetype to apply (Collectable, Platform, Checkpoint)")
	cmd.Flags().BoolVar(&force, "force", false, "rewrite even when malformed lines will be dropped")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

// applyArchetype applies a to every tile tagged tag and returns the count.
func applyArchetype(tiles []*tile.Tile, tag string, a tile.Archetype) int {
	n := 0
	for _, t := range tiles {
		if t.Tag() != tag {
			continue
		}
		a.Apply(t)
		n++
	}
	return n
}

func readTiles(path string) ([]*tile.Tile, tilemap.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, tilemap.Report{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return tilemap.Decode(f, nil)
}

// writeTiles replaces path through a temporary file in the same directory.
func writeTiles(path string, tiles []*tile.Tile) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tiles-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if err := tilemap.Encode(tmp, tiles); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
