package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quoteme/go-quoteme/core/listview"
)

// listFlags are the filter and sort flags shared by the list commands.
type listFlags struct {
	search    string
	sortField string
	desc      bool
}

func (f *listFlags) register(cmd *cobra.Command, defaultSort string) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "free-text search")
	cmd.Flags().StringVar(&f.sortField, "sort", defaultSort, "sort field")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
}

var (
	quotesFlags     listFlags
	quotesTag       string
	usersFlags      listFlags
	usersAdminsOnly bool
	subsFlags       listFlags
	subsActiveOnly  bool
	subsFrequency   string
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "List quotes",
	RunE:  runQuotes,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user accounts",
	RunE:  runUsers,
}

var subscribersCmd = &cobra.Command{
	Use:   "subscribers",
	Short: "List daily-nugget subscribers",
	RunE:  runSubscribers,
}

func init() {
	quotesFlags.register(quotesCmd, "created_at")
	quotesCmd.Flags().StringVar(&quotesTag, "tag", listview.EnumAll, "show only one tag")

	usersFlags.register(usersCmd, "email")
	usersCmd.Flags().BoolVar(&usersAdminsOnly, "admins-only", false, "show only administrators")

	subsFlags.register(subscribersCmd, "email")
	subscribersCmd.Flags().BoolVar(&subsActiveOnly, "active-only", false, "show only active subscribers")
	subscribersCmd.Flags().StringVar(&subsFrequency, "frequency", listview.EnumAll, "show only one delivery frequency")
}

func runQuotes(cmd *cobra.Command, args []string) error {
	screen := screensQuotes()
	if err := screen.Refresh(cmd.Context()); err != nil {
		return err
	}
	screen.SetSearch(quotesFlags.search)
	screen.SetTag(quotesTag)
	screen.SetSort(quotesFlags.sortField, !quotesFlags.desc)

	records, err := screen.Visible()
	if err != nil {
		return err
	}
	return printTable(cmd, records, "id", "quote", "author", "tag", "favorites_count")
}

func runUsers(cmd *cobra.Command, args []string) error {
	screen := screensUsers()
	if err := screen.Refresh(cmd.Context()); err != nil {
		return err
	}
	screen.SetSearch(usersFlags.search)
	screen.SetAdminsOnly(usersAdminsOnly)
	screen.SetSort(usersFlags.sortField, !usersFlags.desc)

	records, err := screen.Visible()
	if err != nil {
		return err
	}
	return printTable(cmd, records, "id", "email", "username", "is_admin")
}

func runSubscribers(cmd *cobra.Command, args []string) error {
	screen := screensSubscribers()
	if err := screen.Refresh(cmd.Context()); err != nil {
		return err
	}
	screen.SetSearch(subsFlags.search)
	screen.SetActiveOnly(subsActiveOnly)
	screen.SetFrequency(subsFrequency)
	screen.SetSort(subsFlags.sortField, !subsFlags.desc)

	records, err := screen.Visible()
	if err != nil {
		return err
	}
	return printTable(cmd, records, "id", "email", "frequency", "is_active")
}

// printTable renders records as aligned columns, one row per record.
func printTable(cmd *cobra.Command, records []listview.Record, columns ...string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)

	for _, rec := range records {
		for i, col := range columns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			if v, ok := rec[col]; ok {
				fmt.Fprintf(w, "%v", v)
			}
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d record(s)\n", len(records))
	return nil
}
