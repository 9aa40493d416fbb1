package enka

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

const buildFetchConcurrency = 4

// FetchAllCharacterBuilds fetches the game accounts linked under a profile
// and then the character builds of each, fanning the builds fetches out with
// bounded concurrency. The result maps account hash to character id to
// builds. Any per-account failure fails the whole operation.
func (s *System) FetchAllCharacterBuilds(ctx context.Context, username string, allowed ...HoyoType) (map[string]map[string][]CharacterBuild, error) {
	accounts, err := s.FetchGameAccounts(ctx, username, allowed...)
	if err != nil {
		return nil, err
	}

	p := pool.New().WithMaxGoroutines(buildFetchConcurrency)

	results := make([]map[string][]CharacterBuild, len(accounts))
	errs := make([]error, len(accounts))
	var mu sync.Mutex

	for idx, account := range accounts {
		idx, account := idx, account
		p.Go(func() {
			builds, err := account.FetchBuilds(ctx)
			mu.Lock()
			results[idx] = builds
			errs[idx] = err
			mu.Unlock()
		})
	}

	p.Wait()

	all := make(map[string]map[string][]CharacterBuild, len(accounts))
	for idx, account := range accounts {
		if errs[idx] != nil {
			return nil, errs[idx]
		}
		all[account.Hash] = results[idx]
	}

	return all, nil
}
