package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stash/internal/store"
)

func newVideosCommand(ctx *commandContext) *cobra.Command {
	videosCmd := &cobra.Command{
		Use:   "videos",
		Short: "Inspect saved videos",
	}

	videosCmd.AddCommand(newVideosListCommand(ctx))

	return videosCmd
}

func newVideosListCommand(ctx *commandContext) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's saved videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			user, err := st.UserByUsername(cmd.Context(), strings.TrimSpace(username))
			if err != nil {
				return fmt.Errorf("look up user: %w", err)
			}
			if user == nil {
				return fmt.Errorf("no such user %q", username)
			}

			videos, err := st.VideosByOwner(cmd.Context(), user.ID)
			if err != nil {
				return fmt.Errorf("list videos: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(videos) == 0 {
				fmt.Fprintf(out, "No saved videos for %s\n", user.Username)
				return nil
			}

			fmt.Fprintln(out, renderVideoTable(videos))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "Username whose videos to list")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
