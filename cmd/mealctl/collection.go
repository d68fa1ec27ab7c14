package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pageza/mealboard/backend/internal/service"
)

func collectionCmd(a *app) *cobra.Command {
	var (
		userID string
		page   service.PageRequest
	)

	cmd := &cobra.Command{
		Use:   "collection",
		Short: "List the recipes a user owns or favorited",
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := requiredUUID("user", userID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, res, err := a.store(ctx)
			if err != nil {
				return err
			}
			var gateway service.RecipeGateway
			if res.Gateway != nil {
				gateway = res.Gateway
			}
			collection := service.NewCollectionService(st, gateway, res.Images, a.cfg.CollectionExternalCap, a.logger)

			resp, err := collection.Assemble(ctx, caller, page)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), resp, func(w io.Writer) {
				printRecipes(w, resp.Items)
				fmt.Fprintf(w, "\nowned %d, favorited %d, total %d\n",
					resp.Stats.OwnedCount, resp.Stats.FavoritedCount, resp.Stats.TotalCount)
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (required)")
	cmd.Flags().IntVar(&page.Number, "page", 1, "page number")
	cmd.Flags().IntVar(&page.Size, "page-size", service.DefaultPageSize, "results per page")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
