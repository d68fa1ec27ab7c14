package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
)

func searchCmd(a *app) *cobra.Command {
	var (
		source  string
		filters service.SearchFilters
		page    service.PageRequest
		userID  string
		family  bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search local and external recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := service.ParseSource(source)
			if err != nil {
				return err
			}
			caller, err := optionalUser(userID)
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
			search := service.NewSearchService(st, st, gateway, a.logger,
				service.WithLocalShareCap(a.cfg.SearchLocalShareCap),
				service.WithImages(res.Images))

			resp, err := search.Search(ctx, service.SearchRequest{
				Query:         strings.Join(args, " "),
				Filters:       filters,
				Page:          page,
				Source:        src,
				CallerID:      caller,
				IncludeFamily: family,
			})
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), resp, func(w io.Writer) {
				printRecipes(w, resp.Items)
				fmt.Fprintf(w, "\npage %d, %d of %d results (local %d, external %d)\n",
					resp.Paging.Page, len(resp.Items), resp.Paging.Total,
					resp.SourceBreakdown.Local, resp.SourceBreakdown.External)
			})
		},
	}

	cmd.Flags().StringVar(&source, "source", "mixed", "mixed, local or external")
	cmd.Flags().StringVar(&filters.Cuisine, "cuisine", "", "cuisine filter")
	cmd.Flags().StringVar(&filters.Diet, "diet", "", "diet filter, e.g. vegetarian")
	cmd.Flags().IntVar(&filters.MaxReadyTime, "max-ready", 0, "maximum minutes until ready")
	cmd.Flags().StringVar(&filters.Sort, "sort", "", "sort key: title, time, healthiness, popularity, newest")
	cmd.Flags().StringVar(&filters.SortDirection, "direction", "", "asc or desc")
	cmd.Flags().IntVar(&page.Number, "page", 1, "page number")
	cmd.Flags().IntVar(&page.Size, "page-size", service.DefaultPageSize, "results per page")
	cmd.Flags().StringVar(&userID, "user", "", "search as this user id")
	cmd.Flags().BoolVar(&family, "family", false, "include family recipes of group members")
	return cmd
}

func optionalUser(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", raw, err)
	}
	return &id, nil
}

func requiredUUID(name, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--%s must be a UUID: %w", name, err)
	}
	return id, nil
}

func printRecipes(w io.Writer, recipes []model.Recipe) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tREADY\tFAV")
	for _, r := range recipes {
		fav := ""
		if r.IsFavorited {
			fav = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%dm\t%s\n", r.ID, r.Title, r.ReadyMinutes, fav)
	}
	tw.Flush()
}
