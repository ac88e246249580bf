package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"InfiniteBoard/internal/auth"
	"InfiniteBoard/internal/board"
	"InfiniteBoard/internal/config"
	"InfiniteBoard/internal/export"
	"InfiniteBoard/internal/state"
	"InfiniteBoard/internal/storage"
	"InfiniteBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "board.toml", "path to the TOML config file")
	email := flag.String("email", "", "sign in with this email (creates the account on first use)")
	password := flag.String("password", "", "password for -email")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	state.SetLogger(logger)
	board.SetLogger(logger)
	export.SetLogger(logger)
	storage.SetLogger(logger)
	ui.SetLogger(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("config rejected", "path", *configPath, "err", err)
		os.Exit(1)
	}

	session, err := board.NewSession(cfg.Options())
	if err != nil {
		logger.Error("session setup failed", "err", err)
		os.Exit(1)
	}

	var lib *ui.Library
	store, err := storage.OpenDir(cfg.Storage.Root)
	if err != nil {
		// Drawing still works without a place to save.
		logger.Warn("storage unavailable, saving disabled", "err", err)
	} else {
		lib = &ui.Library{
			Store:   store,
			User:    signIn(logger, store, *email, *password),
			Options: cfg.ExportOptions(),
			Formats: cfg.ExportFormats(),
		}
	}

	user := auth.Guest()
	if lib != nil {
		user = lib.User
	}
	logger.Info("starting canvas", "user", user.ID, "world_size", cfg.WorldSize)
	ui.RunApp(session, cfg.Palette, lib)
}

// accountsFile sits in the storage root next to the per-user directories.
const accountsFile = "accounts.json"

// signIn resolves the identity used to namespace saved drawings. An unknown email
// is signed up. Without credentials, or when sign-in fails, drawings are saved as
// the guest user.
func signIn(logger *slog.Logger, store *storage.FSStore, email, password string) auth.User {
	if email == "" {
		return auth.Guest()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc, err := auth.OpenFileService(store.FS(), store.Path(accountsFile), 0)
	if err != nil {
		logger.Warn("accounts unavailable, continuing as guest", "err", err)
		return auth.Guest()
	}
	u, err := svc.SignIn(ctx, email, password)
	if errors.Is(err, auth.ErrUnknownUser) {
		u, err = svc.SignUp(ctx, email, password)
	}
	if err != nil {
		logger.Warn("sign-in failed, continuing as guest", "email", email, "err", err)
		return auth.Guest()
	}
	logger.Info("signed in", "user", u.ID, "email", u.Email)
	return u
}
