package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ludo-technologies/hashscan/internal/hashfn"
	"github.com/ludo-technologies/hashscan/service"
	"github.com/spf13/cobra"
)

// catalogEntry is the listed form of a hash function
type catalogEntry struct {
	Name        string   `json:"name" yaml:"name"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Width       int      `json:"width" yaml:"width"`
	Normative   bool     `json:"normative" yaml:"normative"`
	Extended    bool     `json:"extended" yaml:"extended"`
}

func catalogEntries() []catalogEntry {
	fns := hashfn.All()
	entries := make([]catalogEntry, len(fns))
	for i, fn := range fns {
		entries[i] = catalogEntry{
			Name:        fn.Name,
			Aliases:     fn.Aliases,
			Description: fn.Description,
			Width:       fn.Width,
			Normative:   fn.Normative,
			Extended:    fn.Extended,
		}
	}
	return entries
}

// NewHashesCmd creates and returns the hashes cobra command
func NewHashesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "hashes",
		Short: "List the hash function catalog",
		Long: `List every hash function with its set, digest width and recurrence.

Width "big" marks digests computed with unbounded integers. Functions in the
extended set are evaluated only with --extended or when named with --hash.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := catalogEntries()
			if asJSON {
				return service.WriteJSON(cmd.OutOrStdout(), entries)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSET\tWIDTH\tDESCRIPTION")
			for _, e := range entries {
				set := "default"
				if e.Extended {
					set = "extended"
				}
				width := "big"
				if e.Width > 0 {
					width = fmt.Sprintf("%d", e.Width)
				}
				description := e.Description
				if !e.Normative {
					description += " (non-normative)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, set, width, description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
