package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/gridsvg"
)

var gridsvgCmd = &cobra.Command{
	Use:   "gridsvg [file]",
	Short: "Write the 40x24 coordinate grid as SVG",
	Long: `Write a labelled 40x24 coordinate grid to the given file
(default coordinates.svg), or to stdout when the file is "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGridSVG,
}

func runGridSVG(cmd *cobra.Command, args []string) error {
	path := "coordinates.svg"
	if len(args) == 1 {
		path = args[0]
	}

	if path == "-" {
		return gridsvg.Write(cmd.OutOrStdout(), gridsvg.Default())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gridsvg: %w", err)
	}
	if err := gridsvg.Write(f, gridsvg.Default()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("gridsvg: %w", err)
	}

	logger.Info("wrote grid", "path", path)
	fmt.Printf("SVG file %q generated successfully!\n", path)
	return nil
}
