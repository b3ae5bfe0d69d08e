package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"popcorn/internal/api"
	"popcorn/internal/config"
	"popcorn/internal/recommend"
)

const emptyResultMessage = "No recommendations match your filters. Try widening them."

func newSimilarCommand(ctx *commandContext) *cobra.Command {
	var count int
	var refine recommend.Refinement

	cmd := &cobra.Command{
		Use:   "similar <title>",
		Short: "List catalog titles most similar to a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			n := svc.DefaultSimilarCount()
			if cmd.Flags().Changed("count") {
				n = count
			}
			if n < 0 {
				return fmt.Errorf("count must be non-negative, got %d", n)
			}
			n = min(n, config.MaxRecommendationCount)

			resp := svc.Similar(cmd.Context(), args[0], n, refine)
			if !resp.Found {
				return fmt.Errorf("movie %q not found in catalog", args[0])
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, resp)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Because you liked %s (%d):\n", resp.Seed.Title, resp.Seed.Year)
			printScored(cmd, resp.Items)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of titles to return (default from config)")
	cmd.Flags().IntVar(&refine.MinYear, "min-year", 0, "Earliest release year")
	cmd.Flags().IntVar(&refine.MaxYear, "max-year", 0, "Latest release year")
	cmd.Flags().IntVar(&refine.MinRuntime, "min-runtime", 0, "Shortest runtime in minutes")
	cmd.Flags().IntVar(&refine.MaxRuntime, "max-runtime", 0, "Longest runtime in minutes")
	cmd.Flags().Float64Var(&refine.MinRating, "min-rating", 0, "Lowest IMDB rating")
	cmd.Flags().Float64Var(&refine.MaxRating, "max-rating", 0, "Highest IMDB rating")
	return cmd
}

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "recommend <user>",
		Short: "Recommend movies for a user (id or username)",
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
			n := svc.DefaultCount()
			if cmd.Flags().Changed("count") {
				n = count
			}
			if n < 0 {
				return fmt.Errorf("count must be non-negative, got %d", n)
			}
			n = min(n, config.MaxRecommendationCount)

			resp, err := svc.Recommend(cmd.Context(), user.ID, n)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, resp)
			}
			out := cmd.OutOrStdout()
			switch recommend.Strategy(resp.Strategy) {
			case recommend.StrategyPopular:
				fmt.Fprintf(out, "Top rated picks for %s:\n", user.Username)
			default:
				fmt.Fprintf(out, "Picks for %s based on %s:\n", user.Username, strings.Join(resp.Seeds, ", "))
			}
			printScored(cmd, resp.Items)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of titles to return (default from config)")
	return cmd
}

func printScored(cmd *cobra.Command, items []api.ScoredMovie) {
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, emptyResultMessage)
		return
	}
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.Title,
			strconv.Itoa(item.Year),
			formatRuntime(item.Runtime),
			formatRating(item.Rating),
			strconv.FormatFloat(item.Score, 'f', 3, 64),
		})
	}
	headers := []string{"#", "Title", "Year", "Runtime", "Rating", "Score"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight}
	fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
}

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the movie catalog",
	}

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "genres",
		Short: "List every genre in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			return printList(cmd, ctx, svc.Genres())
		},
	})

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "directors",
		Short: "List every director in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			return printList(cmd, ctx, svc.Directors())
		},
	})

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "show <title>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			movie, err := svc.Movie(args[0])
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, movie)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d)\n", movie.Title, movie.Year)
			fmt.Fprintf(out, "Director: %s\n", movie.Director)
			fmt.Fprintf(out, "Genres:   %s\n", strings.Join(movie.Genres, ", "))
			fmt.Fprintf(out, "Runtime:  %s\n", formatRuntime(movie.Runtime))
			fmt.Fprintf(out, "Rating:   %s\n", formatRating(movie.Rating))
			if movie.Stars != "" {
				fmt.Fprintf(out, "Stars:    %s\n", movie.Stars)
			}
			fmt.Fprintf(out, "\n%s\n", movie.Overview)
			return nil
		},
	})

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show catalog and model statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.serviceFor(cmd)
			if err != nil {
				return err
			}
			status := svc.Status()
			if ctx.jsonOutput() {
				return writeJSON(cmd, status)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog:    %s\n", status.CatalogPath)
			fmt.Fprintf(out, "Movies:     %d\n", status.Movies)
			fmt.Fprintf(out, "Dropped:    %d\n", status.DroppedRows)
			fmt.Fprintf(out, "Vocabulary: %d terms\n", status.Vocabulary)
			fmt.Fprintf(out, "Built in:   %d ms\n", status.BuildDurationMS)
			return nil
		},
	})

	return catalogCmd
}

func printList(cmd *cobra.Command, ctx *commandContext, values []string) error {
	if ctx.jsonOutput() {
		if values == nil {
			values = []string{}
		}
		return writeJSON(cmd, values)
	}
	out := cmd.OutOrStdout()
	for _, value := range values {
		fmt.Fprintln(out, value)
	}
	return nil
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d min", minutes)
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}
