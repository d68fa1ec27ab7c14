package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
)

func randomCmd(a *app) *cobra.Command {
	var (
		count int
		tags  string
	)
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Fetch random recipes from the external provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.resources(cmd.Context())
			if err != nil {
				return err
			}
			if res.Gateway == nil {
				return errors.New("no external provider configured (set SPOONACULAR_API_KEY)")
			}
			recipes, err := res.Gateway.RandomBatch(cmd.Context(), count, tags)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), recipes, func(w io.Writer) {
				printRecipes(w, recipes)
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of recipes")
	cmd.Flags().StringVar(&tags, "tags", "", "comma separated tags, e.g. vegetarian,dessert")
	return cmd
}
