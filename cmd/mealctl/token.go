package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pageza/mealboard/backend/internal/service"
)

func tokenCmd(a *app) *cobra.Command {
	var userID, username string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requiredUUID("user", userID)
			if err != nil {
				return err
			}
			token, err := service.NewTokenService(a.cfg.JWTSecret).GenerateToken(id, username)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), map[string]string{"token": token}, func(w io.Writer) {
				fmt.Fprintln(w, token)
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (required)")
	cmd.Flags().StringVar(&username, "username", "", "username claim")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
