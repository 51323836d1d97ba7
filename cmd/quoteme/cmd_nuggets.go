package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quoteme/go-quoteme/core/screens"
)

var nuggetsCmd = &cobra.Command{
	Use:   "nuggets",
	Short: "Show daily-nugget settings",
	RunE:  runNuggetsShow,
}

var nuggetsToggleCmd = &cobra.Command{
	Use:   "toggle <category>",
	Short: "Select or deselect a nugget category",
	Args:  cobra.ExactArgs(1),
	RunE:  runNuggetsToggle,
}

var nuggetsFrequencyCmd = &cobra.Command{
	Use:   "frequency <daily|weekly>",
	Short: "Set the delivery frequency",
	Args:  cobra.ExactArgs(1),
	RunE:  runNuggetsFrequency,
}

var nuggetsSubscribeEmail string

var nuggetsSubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Subscribe an email to daily nuggets with the current settings",
	RunE:  runNuggetsSubscribe,
}

func init() {
	nuggetsSubscribeCmd.Flags().StringVar(&nuggetsSubscribeEmail, "email", "", "subscriber email")
	nuggetsSubscribeCmd.MarkFlagRequired("email")
	nuggetsCmd.AddCommand(nuggetsToggleCmd, nuggetsFrequencyCmd, nuggetsSubscribeCmd)
}

// loadSettings builds the settings state from the prefs store. Corrupt
// persisted settings reset to defaults; the corruption is reported but
// not fatal.
func loadSettings(cmd *cobra.Command) (*screens.NuggetsSettings, error) {
	settings := screens.NewNuggetsSettings(cli.prefs, cli.bus)
	if err := settings.Load(cmd.Context()); err != nil {
		var corrupt *screens.CorruptPrefsError
		if !errors.As(err, &corrupt) {
			return nil, err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: stored settings were unreadable, reset to defaults")
	}
	return settings, nil
}

func runNuggetsShow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Categories:", strings.Join(settings.Selected(), ", "))
	fmt.Fprintln(cmd.OutOrStdout(), "Frequency: ", settings.Frequency())
	return nil
}

func runNuggetsToggle(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := settings.Toggle(args[0]); err != nil {
		return err
	}
	if err := settings.Save(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Categories:", strings.Join(settings.Selected(), ", "))
	return nil
}

func runNuggetsFrequency(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := settings.SetFrequency(args[0]); err != nil {
		return err
	}
	if err := settings.Save(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Frequency:", settings.Frequency())
	return nil
}

func runNuggetsSubscribe(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	err = cli.api.Subscribe(cmd.Context(), nuggetsSubscribeEmail, settings.Frequency(), settings.Selected())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Subscribed", nuggetsSubscribeEmail)
	return nil
}
