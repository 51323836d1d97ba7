package main

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quoteme/go-quoteme/core/session"
)

var loginUsername string

// loginCmd signs in and persists the refresh token so later invocations
// resume the session without a password.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the Quote Me backend",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account email or username")
	loginCmd.MarkFlagRequired("username")
}

func runLogin(cmd *cobra.Command, args []string) error {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	if err := cli.tokens.Login(cmd.Context(), loginUsername, string(raw)); err != nil {
		return err
	}
	if err := cli.prefs.Set(cmd.Context(), refreshTokenKey, []byte(cli.tokens.RefreshToken())); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Signed in as", loginUsername)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := cli.prefs.Delete(cmd.Context(), refreshTokenKey); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Session cleared")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	// Materialize an access token first; a resumed session holds only
	// the refresh token until the first request.
	if _, err := cli.tokens.AccessToken(cmd.Context()); err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			return errors.New("not signed in; run `quoteme login` first")
		}
		return err
	}
	claims, err := cli.tokens.Claims()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n", claims.Subject)
	if claims.Email != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Email:   %s\n", claims.Email)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Admin:   %t\n", claims.Admin)
	return nil
}
