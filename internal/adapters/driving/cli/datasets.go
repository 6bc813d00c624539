package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDatasetsCmd(app *App) *cobra.Command {
	var (
		query   string
		page    int
		perPage int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "datasets [table]",
		Short: "List loaded tables or browse one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				tables := svc.Datasets.ListTables()
				if asJSON {
					return writeJSON(out, tables)
				}
				if len(tables) == 0 {
					fmt.Fprintln(out, "No tables loaded.")
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TABLE\tRECORDS")
				for _, t := range tables {
					fmt.Fprintf(tw, "%s\t%d\n", t.Name, t.Records)
				}
				return tw.Flush()
			}

			result, err := svc.Datasets.Browse(args[0], query, page, perPage)
			if err != nil {
				return fmt.Errorf("browse %s: %w", args[0], err)
			}
			if asJSON {
				return writeJSON(out, result)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, strings.ToUpper(strings.Join(result.Columns, "\t")))
			for _, rec := range result.Records {
				cells := make([]string, len(result.Columns))
				for i, col := range result.Columns {
					cells[i] = rec.Display(col)
				}
				fmt.Fprintln(tw, strings.Join(cells, "\t"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nPage %d of %d (%d records)\n", result.Page, result.TotalPages, result.Total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "keyword filter")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "records per page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
