package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Management subcommands behind the list commands. These mutate backend
// state and require an admin session; the backend enforces that and the
// client surfaces its 403 as ErrForbidden.

var (
	quoteText   string
	quoteAuthor string
	quoteTag    string
)

var quotesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a quote",
	RunE:  runQuotesAdd,
}

var quotesEditCmd = &cobra.Command{
	Use:   "edit <quote-id>",
	Short: "Update a quote's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuotesEdit,
}

var quotesRemoveCmd = &cobra.Command{
	Use:   "rm <quote-id>",
	Short: "Delete a quote",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuotesRemove,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	RunE:  runTags,
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsAdd,
}

var tagsRemoveCmd = &cobra.Command{
	Use:   "rm <tag-id>",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsRemove,
}

var userAdmin bool

var usersAdminCmd = &cobra.Command{
	Use:   "set-admin <user-id>",
	Short: "Grant or revoke a user's admin role",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersAdmin,
}

var subscribersRemoveCmd = &cobra.Command{
	Use:   "rm <subscriber-id>",
	Short: "Remove a subscriber",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubscribersRemove,
}

func init() {
	quotesAddCmd.Flags().StringVar(&quoteText, "quote", "", "quote text")
	quotesAddCmd.Flags().StringVar(&quoteAuthor, "author", "", "quote author")
	quotesAddCmd.Flags().StringVar(&quoteTag, "tag", "", "quote tag")
	quotesAddCmd.MarkFlagRequired("quote")
	quotesAddCmd.MarkFlagRequired("author")

	quotesEditCmd.Flags().StringVar(&quoteText, "quote", "", "new quote text")
	quotesEditCmd.Flags().StringVar(&quoteAuthor, "author", "", "new author")
	quotesEditCmd.Flags().StringVar(&quoteTag, "tag", "", "new tag")

	usersAdminCmd.Flags().BoolVar(&userAdmin, "admin", true, "admin role on or off")

	quotesCmd.AddCommand(quotesAddCmd, quotesEditCmd, quotesRemoveCmd)
	tagsCmd.AddCommand(tagsAddCmd, tagsRemoveCmd)
	usersCmd.AddCommand(usersAdminCmd)
	subscribersCmd.AddCommand(subscribersRemoveCmd)
}

func runQuotesAdd(cmd *cobra.Command, args []string) error {
	rec, err := cli.api.CreateQuote(cmd.Context(), quoteText, quoteAuthor, quoteTag)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created quote %v\n", rec["id"])
	return nil
}

func runQuotesEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	fields := map[string]any{}
	if cmd.Flags().Changed("quote") {
		fields["quote"] = quoteText
	}
	if cmd.Flags().Changed("author") {
		fields["author"] = quoteAuthor
	}
	if cmd.Flags().Changed("tag") {
		fields["tag"] = quoteTag
	}
	if len(fields) == 0 {
		return fmt.Errorf("nothing to update")
	}

	if err := cli.api.UpdateQuote(cmd.Context(), id, fields); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Updated quote", id)
	return nil
}

func runQuotesRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := cli.api.DeleteQuote(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted quote", id)
	return nil
}

func runTags(cmd *cobra.Command, args []string) error {
	records, err := cli.api.ListTags(cmd.Context())
	if err != nil {
		return err
	}
	return printTable(cmd, records, "id", "name", "quote_count")
}

func runTagsAdd(cmd *cobra.Command, args []string) error {
	rec, err := cli.api.CreateTag(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created tag %v\n", rec["id"])
	return nil
}

func runTagsRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := cli.api.DeleteTag(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted tag", id)
	return nil
}

func runUsersAdmin(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := cli.api.SetUserAdmin(cmd.Context(), id, userAdmin); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "User %d admin=%t\n", id, userAdmin)
	return nil
}

func runSubscribersRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := cli.api.Unsubscribe(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Removed subscriber", id)
	return nil
}
