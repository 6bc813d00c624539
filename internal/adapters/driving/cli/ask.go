package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

func newAskCmd(app *App) *cobra.Command {
	var (
		domainFlag     string
		conversationID string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from the domain data",
		Long: `Routes the question, assembles the context and asks the configured
completion model. Pass --conversation to continue an earlier exchange.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.services(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := svc.Chat.Ask(cmd.Context(), domain.AskRequest{
				ConversationID: conversationID,
				Question:       question(args),
				Domain:         domain.DomainID(domainFlag),
			})
			if err != nil {
				return fmt.Errorf("ask failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, resp)
			}
			if resp.NeedsDomain {
				printChoices(out, resp.Choices)
				return nil
			}

			fmt.Fprintln(out, resp.Answer)
			fmt.Fprintf(out, "\n[%s | %s | conversation %s]\n", resp.Label, resp.Model, resp.ConversationID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&domainFlag, "domain", "d", "", "answer from this domain, skipping routing")
	cmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "conversation to continue")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the response as JSON")
	return cmd
}
