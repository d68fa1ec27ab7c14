package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
)

func groceryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grocery",
		Short: "Grocery list commands",
	}
	cmd.AddCommand(groceryGenerateCmd(a))
	return cmd
}

func groceryGenerateCmd(a *app) *cobra.Command {
	var (
		userID, groupID, planID, name string
		ingredients, extras           []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a consolidated grocery list from a meal plan or ingredients",
		Example: `  mealctl grocery generate --user U --group G --plan P
  mealctl grocery generate --user U --group G -i "flour:2:cup" -i "eggs:3"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := requiredUUID("user", userID)
			if err != nil {
				return err
			}
			group, err := requiredUUID("group", groupID)
			if err != nil {
				return err
			}
			req := service.GenerateRequest{
				GroupID:         group,
				Name:            name,
				Ingredients:     parseIngredients(ingredients),
				AdditionalItems: parseIngredients(extras),
			}
			if planID != "" {
				plan, err := requiredUUID("plan", planID)
				if err != nil {
					return err
				}
				req.MealPlanID = &plan
			}

			ctx := cmd.Context()
			st, _, err := a.store(ctx)
			if err != nil {
				return err
			}
			list, err := service.NewGroceryService(st, a.logger).Generate(ctx, caller, req)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), list, func(w io.Writer) {
				printGroceryList(w, list)
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (required)")
	cmd.Flags().StringVar(&groupID, "group", "", "group id (required)")
	cmd.Flags().StringVar(&planID, "plan", "", "meal plan id")
	cmd.Flags().StringVar(&name, "name", "", "list name")
	cmd.Flags().StringArrayVarP(&ingredients, "ingredient", "i", nil, "ingredient as name[:amount[:unit]]")
	cmd.Flags().StringArrayVar(&extras, "extra", nil, "additional item as name[:amount[:unit]]")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}

// parseIngredients reads name[:amount[:unit]] values.
func parseIngredients(raw []string) []model.Ingredient {
	var out []model.Ingredient
	for _, r := range raw {
		parts := strings.SplitN(r, ":", 3)
		ing := model.Ingredient{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			ing.Amount = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			ing.Unit = strings.TrimSpace(parts[2])
		}
		if ing.Name != "" {
			out = append(out, ing)
		}
	}
	return out
}

func printGroceryList(w io.Writer, list *model.GroceryList) {
	fmt.Fprintf(w, "%s (%s)\n\n", list.Name, list.ID)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tITEM\tAMOUNT\tSOURCES")
	for _, items := range []model.GroceryItems{list.Items, list.AdditionalItems} {
		for _, item := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", item.Category, item.Name,
				strings.TrimSpace(item.Amount+" "+item.Unit), len(item.Sources))
		}
	}
	tw.Flush()
}
