package main

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirechat-gamebot/internal/app"
	"github.com/vovakirdan/wirechat-gamebot/internal/store"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect the persisted bot settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print every settings key with its values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := opts.loadConfig()
			if err != nil {
				return err
			}
			st, err := app.OpenSettingsStore(cmd.Context(), cfg.Settings)
			if err != nil {
				return err
			}
			defer st.Close()

			settings, err := st.Load(cmd.Context())
			if err != nil {
				return err
			}
			renderSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	})
	return cmd
}

func renderSettings(w io.Writer, settings store.Settings) {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Count", "Values"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, k := range keys {
		table.Append([]string{k, strconv.Itoa(len(settings[k])), strings.Join(settings[k], ", ")})
	}
	table.Render()
}
