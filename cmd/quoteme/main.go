// Command quoteme is a terminal client for the Quote Me backend: browse
// and filter quotes, users, and nugget subscribers, manage favorites
// with an offline mirror, and edit daily-nugget settings.
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quoteme/go-quoteme/config"
	"github.com/quoteme/go-quoteme/core/listview"
	"github.com/quoteme/go-quoteme/core/rest"
	"github.com/quoteme/go-quoteme/core/screens"
	"github.com/quoteme/go-quoteme/core/session"
	"github.com/quoteme/go-quoteme/sqlite"
)

const refreshTokenKey = "session_refresh_token"

// app holds the wired-up client shared by every subcommand.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *sql.DB
	prefs     *sqlite.PrefsStore
	favorites *sqlite.FavoritesStore
	tokens    *session.TokenSource
	api       *rest.Client
	engine    *listview.Engine
	bus       *screens.Bus
}

var cli *app

var rootCmd = &cobra.Command{
	Use:           "quoteme",
	Short:         "Quote Me terminal client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cli, err = newApp(cmd)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cli != nil {
			cli.close()
		}
	},
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	prefs, err := sqlite.NewPrefsStore(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	favorites, err := sqlite.NewFavoritesStore(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	tokens := session.NewTokenSource(cfg.Identity.TokenURL, cfg.Identity.ClientID, nil, logger)
	if raw, err := prefs.Get(cmd.Context(), refreshTokenKey); err == nil {
		tokens.Resume(string(raw))
	}

	bus, err := screens.NewBus()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		prefs:     prefs,
		favorites: favorites,
		tokens:    tokens,
		api:       rest.NewClient(cfg.API.BaseURL, tokens, nil, logger),
		engine:    listview.NewEngine(logger),
		bus:       bus,
	}, nil
}

func screensQuotes() *screens.QuotesScreen {
	return screens.NewQuotesScreen(cli.api, cli.engine, cli.bus)
}

func screensUsers() *screens.UsersScreen {
	return screens.NewUsersScreen(cli.api, cli.engine, cli.bus)
}

func screensSubscribers() *screens.SubscribersScreen {
	return screens.NewSubscribersScreen(cli.api, cli.engine, cli.bus)
}

func screensFavorites() *screens.FavoritesScreen {
	return screens.NewFavoritesScreen(cli.api, cli.favorites, cli.engine, cli.bus)
}

func (a *app) close() {
	a.db.Close()
	a.logger.Sync()
}

func main() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(quotesCmd, usersCmd, subscribersCmd, tagsCmd)
	rootCmd.AddCommand(favoritesCmd, nuggetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
