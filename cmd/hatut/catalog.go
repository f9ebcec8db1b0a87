package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pders01/hatut/internal/catalog"
	"github.com/pders01/hatut/internal/config"
	"github.com/pders01/hatut/internal/source"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local story catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <word> <file>",
	Short: "Store the stories in file as the collection for word",
	Long: "Import reads a JSON object mapping story id to {title, author}, " +
		"or an RSS/Atom feed, and stores it as the collection for word.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, func(_ *config.Config, c *catalog.Catalog) error {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[1], err)
			}
			defer f.Close()

			entries, err := source.NewParser().Parse(f, contentType(args[1]))
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[1], err)
			}
			if err := c.Import(args[0], entries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d stories as %q\n", len(entries), strings.ToLower(strings.TrimSpace(args[0])))
			return nil
		})
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, func(_ *config.Config, c *catalog.Catalog) error {
			words, err := c.Words()
			if err != nil {
				return err
			}
			if len(words) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No collections")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, word := range words {
				entries, err := c.Collection(word)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d stories\n", word, len(entries))
			}
			return w.Flush()
		})
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <word>",
	Short: "Search stored stories by title and author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, func(cfg *config.Config, c *catalog.Catalog) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Catalog.SearchLimit
			}
			entries, err := c.Search(args[0], limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Title, e.Author)
			}
			return w.Flush()
		})
	},
}

func init() {
	catalogCmd.PersistentFlags().String("db", "", "Path to catalog file (overrides config)")
	catalogSearchCmd.Flags().IntP("limit", "n", 0, "Maximum results (default from config)")
	catalogCmd.AddCommand(catalogImportCmd, catalogListCmd, catalogSearchCmd)
}

// withCatalog opens the configured catalog (or --db) around fn.
func withCatalog(cmd *cobra.Command, fn func(*config.Config, *catalog.Catalog) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.Catalog.Path
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		path = db
	}

	c, err := catalog.Open(path, cfg.Catalog.Timeout)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(cfg, c)
}

func contentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".rss":
		return "application/rss+xml"
	case ".atom":
		return "application/atom+xml"
	default:
		return "application/json"
	}
}
