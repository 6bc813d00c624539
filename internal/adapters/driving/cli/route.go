package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

func newRouteCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "route <question>",
		Short: "Show which domains a question routes to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}

			route := svc.Router.Route(question(args))
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, route)
			}

			fmt.Fprintf(out, "Route: %s\n", describeRoute(route))
			for _, d := range svc.Router.Domains() {
				fmt.Fprintf(out, "  %-10s %d\n", d.ID, route.Scores[d.ID])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output the route as JSON")
	return cmd
}

func newContextCmd(app *App) *cobra.Command {
	var domains []string

	cmd := &cobra.Command{
		Use:   "context <question>",
		Short: "Print the context assembled for a question",
		Long: `Routes the question (or uses the --domain flags) and prints the context
that would be sent to the completion model. No model is called.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}

			req := domain.ContextRequest{Question: question(args)}
			for _, d := range domains {
				req.Domains = append(req.Domains, domain.DomainID(d))
			}

			resp, err := svc.Chat.Context(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if resp.Route.IsUncertain() {
				printChoices(out, svc.Router.Domains())
				return nil
			}
			fmt.Fprintln(out, resp.Context)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&domains, "domain", "d", nil, "domain(s) to build context for, skipping routing")
	return cmd
}

func describeRoute(route domain.RouteResult) string {
	if route.IsUncertain() {
		return string(route.Kind)
	}
	ids := make([]string, len(route.Domains))
	for i, d := range route.Domains {
		ids[i] = string(d)
	}
	return fmt.Sprintf("%s (%s)", route.Kind, strings.Join(ids, ", "))
}

func printChoices(out io.Writer, choices []domain.DomainSummary) {
	fmt.Fprintln(out, "Not sure which domain this question is about. Pick one with --domain:")
	for _, c := range choices {
		fmt.Fprintf(out, "  %-10s %s %s\n", c.ID, c.Icon, c.Name)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
