package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docnav/internal/doctree"
)

func outlineCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Load the document once and print its navigation tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			coord, cleanup, err := newCoordinator(cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()
			defer coord.Close()

			if _, err := coord.Load(context.Background()); err != nil {
				return err
			}
			nav := coord.Nav("")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(nav)
			}
			printNav(cmd.OutOrStdout(), nav, 0)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	return cmd
}

func printNav(w io.Writer, nodes []*doctree.NavNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		fmt.Fprintf(w, "%s- %s (%s)\n", indent, n.Label, n.Href)
		printNav(w, n.Children, depth+1)
	}
}
