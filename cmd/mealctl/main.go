package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/config"
	"github.com/pageza/mealboard/backend/internal/bootstrap"
	"github.com/pageza/mealboard/backend/internal/logging"
	"github.com/pageza/mealboard/backend/internal/store"
)

// app carries what every subcommand shares. Connections are opened on first use.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	res     *bootstrap.Resources
	verbose bool
	asJSON  bool
}

func main() {
	a := &app{}
	rootCmd := newRootCmd(a)
	err := rootCmd.Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mealctl",
		Short: "Search recipes, inspect collections and build grocery lists",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Environment, a.verbose)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print results as JSON")

	rootCmd.AddCommand(searchCmd(a))
	rootCmd.AddCommand(collectionCmd(a))
	rootCmd.AddCommand(groceryCmd(a))
	rootCmd.AddCommand(randomCmd(a))
	rootCmd.AddCommand(budgetCmd(a))
	rootCmd.AddCommand(tokenCmd(a))
	return rootCmd
}

func (a *app) resources(ctx context.Context) (*bootstrap.Resources, error) {
	if a.res != nil {
		return a.res, nil
	}
	res, err := bootstrap.Open(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.res = res
	return res, nil
}

func (a *app) store(ctx context.Context) (*store.Store, *bootstrap.Resources, error) {
	res, err := a.resources(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store.New(res.DB), res, nil
}

func (a *app) close() {
	if a.res != nil {
		a.res.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// print writes v as indented JSON when --json is set and calls human otherwise.
func (a *app) print(w io.Writer, v interface{}, human func(io.Writer)) error {
	if !a.asJSON {
		human(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
