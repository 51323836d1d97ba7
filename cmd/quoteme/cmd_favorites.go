package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var favoritesFlags listFlags

// favoritesCmd lists favorites. On backend failure the locally mirrored
// copy is shown with a warning instead of an empty screen.
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite quotes",
	RunE:  runFavorites,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <quote-id>",
	Short: "Mark a quote as a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "rm <quote-id>",
	Short: "Unmark a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

func init() {
	favoritesFlags.register(favoritesCmd, "author")
	favoritesCmd.AddCommand(favoritesAddCmd, favoritesRemoveCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quote id %q", arg)
	}
	return id, nil
}

func runFavorites(cmd *cobra.Command, args []string) error {
	screen := screensFavorites()
	if err := screen.Refresh(cmd.Context()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: backend unreachable, showing local copy:", err)
	}
	screen.SetSearch(favoritesFlags.search)
	screen.SetSort(favoritesFlags.sortField, !favoritesFlags.desc)

	records, err := screen.Visible()
	if err != nil {
		return err
	}
	return printTable(cmd, records, "id", "quote", "author", "tag")
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	// The screen mirrors the full record locally, so resolve it first.
	quotes, err := cli.api.ListQuotes(cmd.Context())
	if err != nil {
		return err
	}
	screen := screensFavorites()
	for _, rec := range quotes {
		if recID, ok := rec["id"].(int64); ok && recID == id {
			if err := screen.Add(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Added favorite", id)
			return nil
		}
	}
	return fmt.Errorf("no quote with id %d", id)
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := screensFavorites().Remove(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Removed favorite", id)
	return nil
}
