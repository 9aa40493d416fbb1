// Command fetch_profile fetches an enka.network profile with its linked game
// accounts and character builds and prints them as JSON. Without game
// libraries registered the per-game user snapshots stay empty; the tool is
// meant for inspecting the raw account surface.
package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kapu/enka-system-go/enka"
	"github.com/kapu/enka-system-go/internal/config"
	"github.com/kapu/enka-system-go/internal/util"
)

type accountOutput struct {
	Hash       string                `json:"hash"`
	HoyoType   int                   `json:"hoyo_type"`
	UID        *int64                `json:"uid"`
	Verified   bool                  `json:"verified"`
	Region     enka.GameServerRegion `json:"region"`
	URL        string                `json:"url"`
	BuildCount int                   `json:"build_count"`
}

type output struct {
	Username string          `json:"username"`
	Bio      string          `json:"bio"`
	Level    int             `json:"level"`
	URL      string          `json:"url"`
	Accounts []accountOutput `json:"accounts"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: fetch_profile <username>")
		os.Exit(2)
	}
	username := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	system := enka.NewSystem(enka.Options{
		BaseURL:   cfg.Enka.BaseURL,
		Timeout:   cfg.Enka.Timeout,
		UserAgent: cfg.Enka.UserAgent,
		Logger:    logger,
	})

	ctx := context.Background()

	profile, err := system.FetchProfile(ctx, username)
	if err != nil {
		logger.Fatal("failed to fetch profile", zap.String("username", username), zap.Error(err))
	}

	accounts, err := profile.FetchGameAccounts(ctx)
	if err != nil {
		logger.Fatal("failed to fetch game accounts", zap.String("username", username), zap.Error(err))
	}

	out := output{
		Username: profile.Username,
		Bio:      profile.Bio,
		Level:    profile.Level,
		URL:      profile.URL,
		Accounts: make([]accountOutput, 0, len(accounts)),
	}

	for _, account := range accounts {
		builds, err := account.FetchBuilds(ctx)
		if err != nil {
			logger.Error("failed to fetch builds",
				zap.String("hash", account.Hash),
				zap.Error(err),
			)
			continue
		}

		buildCount := 0
		for _, group := range builds {
			buildCount += len(group)
		}

		out.Accounts = append(out.Accounts, accountOutput{
			Hash:       account.Hash,
			HoyoType:   int(account.HoyoType),
			UID:        account.UID,
			Verified:   account.IsVerified,
			Region:     account.Region,
			URL:        account.URL,
			BuildCount: buildCount,
		})
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode output", zap.Error(err))
	}

	fmt.Println(string(encoded))
}
