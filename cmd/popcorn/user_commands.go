package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"popcorn/internal/api"
	"popcorn/internal/recommend"
)

func newUserCommand(ctx *commandContext) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	userCmd.AddCommand(&cobra.Command{
		Use:   "add <username> <email>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			user, err := svc.CreateUser(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, user)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	})

	userCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			users, err := svc.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				if users == nil {
					users = []api.User{}
				}
				return writeJSON(cmd, users)
			}
			out := cmd.OutOrStdout()
			if len(users) == 0 {
				fmt.Fprintln(out, "No users yet. Create one with `popcorn user add`.")
				return nil
			}
			rows := make([][]string, 0, len(users))
			for _, user := range users {
				rows = append(rows, []string{strconv.FormatInt(user.ID, 10), user.Username, user.Email, user.CreatedAt})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Username", "Email", "Created"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	})

	userCmd.AddCommand(&cobra.Command{
		Use:   "show <user>",
		Short: "Show a user and their activity summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			user, err := svc.ResolveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			stats, err := svc.Stats(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, struct {
					api.User
					Stats api.UserStats `json:"stats"`
				}{user, stats})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User:    %s (id %d)\n", user.Username, user.ID)
			fmt.Fprintf(out, "Email:   %s\n", user.Email)
			fmt.Fprintf(out, "Created: %s\n", user.CreatedAt)
			fmt.Fprintf(out, "Watched: %d  Rated: %d\n", stats.Watched, stats.Rated)
			return nil
		},
	})

	userCmd.AddCommand(&cobra.Command{
		Use:   "delete <user>",
		Short: "Delete a user and all of their history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			user, err := svc.ResolveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := svc.DeleteUser(cmd.Context(), user.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", user.Username)
			return nil
		},
	})

	return userCmd
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <user> <title>",
		Short: "Record a watched title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			user, err := svc.ResolveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := svc.Watch(cmd.Context(), user.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as watched for %s\n", args[1], user.Username)
			return nil
		},
	}
}

func newRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <user> <title> <1-10>",
		Short: "Rate a title from 1 to 10",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(strings.TrimSpace(args[2]))
			if err != nil {
				return fmt.Errorf("rating must be a whole number from 1 to 10, got %q", args[2])
			}
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			user, err := svc.ResolveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := svc.Rate(cmd.Context(), user.ID, args[1], rating); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rated %q %d/10 for %s\n", args[1], rating, user.Username)
			return nil
		},
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "history <user>",
		Short: "Show watch history and ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			user, err := svc.ResolveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if clearAll {
				if err := svc.ClearWatchHistory(cmd.Context(), user.ID); err != nil {
					return err
				}
				if err := svc.ClearRatings(cmd.Context(), user.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleared history and ratings for %s\n", user.Username)
				return nil
			}

			watched, err := svc.WatchHistory(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			ratings, err := svc.Ratings(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, struct {
					Watched []api.WatchEntry  `json:"watched"`
					Ratings []api.RatingEntry `json:"ratings"`
				}{watched, ratings})
			}

			if len(watched) == 0 {
				fmt.Fprintln(out, "No watched titles.")
			} else {
				rows := make([][]string, 0, len(watched))
				for _, entry := range watched {
					rows = append(rows, []string{entry.Title, entry.WatchedAt})
				}
				fmt.Fprintln(out, renderTable(out, []string{"Watched", "When"}, rows, nil))
			}
			if len(ratings) == 0 {
				fmt.Fprintln(out, "No ratings.")
			} else {
				rows := make([][]string, 0, len(ratings))
				for _, entry := range ratings {
					rows = append(rows, []string{entry.Title, strconv.Itoa(entry.Rating), entry.RatedAt})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"Rated", "Rating", "When"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Remove all watch history and ratings for the user")
	return cmd
}

func newPrefsCommand(ctx *commandContext) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or set recommendation filters",
	}

	prefsCmd.AddCommand(&cobra.Command{
		Use:   "show <user>",
		Short: "Show a user's preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			user, err := svc.ResolveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			prefs, err := svc.Preferences(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, prefs)
			}
			printPreferences(cmd, prefs)
			return nil
		},
	})

	var minRating float64
	var genres, directors []string
	var runtime string
	setCmd := &cobra.Command{
		Use:   "set <user>",
		Short: "Replace a user's preferences",
		Long: "Replace a user's preferences. Flags that are not given are cleared.\n" +
			"Runtime accepts short (<90 min), medium (90-150 min), long (>150 min) or any.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			user, err := svc.ResolveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			input := api.Preferences{
				Genres:    genres,
				Directors: directors,
				Runtime:   runtime,
			}
			if cmd.Flags().Changed("min-rating") {
				input.MinRating = &minRating
			}
			prefs, err := svc.SetPreferences(cmd.Context(), user.ID, input)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, prefs)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preferences for %s\n", user.Username)
			printPreferences(cmd, prefs)
			return nil
		},
	}
	setCmd.Flags().Float64Var(&minRating, "min-rating", 0, "Lowest IMDB rating (0-10)")
	setCmd.Flags().StringSliceVar(&genres, "genre", nil, "Preferred genre (repeatable)")
	setCmd.Flags().StringSliceVar(&directors, "director", nil, "Preferred director (repeatable)")
	setCmd.Flags().StringVar(&runtime, "runtime", "", "Runtime bucket: short, medium, long, or any")
	prefsCmd.AddCommand(setCmd)

	return prefsCmd
}

func printPreferences(cmd *cobra.Command, prefs api.Preferences) {
	out := cmd.OutOrStdout()
	minRating := "any"
	if prefs.MinRating != nil {
		minRating = formatRating(*prefs.MinRating)
	}
	runtime := "any"
	if bucket, err := recommend.ParseRuntimeBucket(prefs.Runtime); err == nil && bucket != recommend.RuntimeAny {
		runtime = bucket.Label()
	}
	fmt.Fprintf(out, "Min rating: %s\n", minRating)
	fmt.Fprintf(out, "Genres:     %s\n", joinOrAny(prefs.Genres))
	fmt.Fprintf(out, "Directors:  %s\n", joinOrAny(prefs.Directors))
	fmt.Fprintf(out, "Runtime:    %s\n", runtime)
}

func joinOrAny(values []string) string {
	if len(values) == 0 {
		return "any"
	}
	return strings.Join(values, ", ")
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <user>",
		Short: "Show a user's viewing statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			user, err := svc.ResolveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			stats, err := svc.Stats(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, stats)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watched:        %d\n", stats.Watched)
			fmt.Fprintf(out, "Rated:          %d\n", stats.Rated)
			if stats.Rated > 0 {
				fmt.Fprintf(out, "Average rating: %.1f\n", stats.AverageRating)
			}
			if stats.FavoriteGenre != "" {
				fmt.Fprintf(out, "Favorite genre: %s\n", stats.FavoriteGenre)
			}
			return nil
		},
	}
}
