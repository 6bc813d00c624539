package cli

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driving"
)

// Services are the wired core services used by the data commands
type Services struct {
	Router   driving.RouterService
	Chat     driving.ChatService
	Datasets driving.DatasetService

	// Serve runs the HTTP API and background worker until ctx is cancelled
	Serve func(ctx context.Context) error
}

// App holds what the commands need. Services are wired lazily so that
// commands like hash-key work without a dataset or a database.
type App struct {
	Version string
	Auth    driven.AuthAdapter

	// Load wires the services on first use
	Load func(ctx context.Context) (*Services, error)

	once sync.Once
	svc  *Services
	err  error
}

func (a *App) services(ctx context.Context) (*Services, error) {
	a.once.Do(func() {
		if a.Load == nil {
			a.err = errors.New("services not configured")
			return
		}
		a.svc, a.err = a.Load(ctx)
	})
	return a.svc, a.err
}

// NewRootCmd creates the top-level "sercha-insight" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "sercha-insight",
		Short: "Enterprise data assistant",
		Long: `Routes business questions to the sales, HR, finance, inventory, audit and
schema domains, assembles prompt-ready context from the loaded records and
answers them with a completion model.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newRouteCmd(app),
		newContextCmd(app),
		newAskCmd(app),
		newDatasetsCmd(app),
		newHashKeyCmd(app),
		newTokenCmd(app),
		newVersionCmd(app),
	)

	return root
}

// question joins the positional arguments so quoting is optional
func question(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
