package enka

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/kapu/enka-system-go/pkg/errors"
)

// The functions in this file recover static typing from the runtime-keyed
// registry. Go methods cannot carry type parameters, so the typed variants of
// the resolvers are package-level functions taking the System explicitly; the
// untyped System methods delegate here with the interface types. Each function
// performs exactly one type assertion binding the runtime lookup result to its
// type parameter.

// LibraryAs returns the library registered for the hoyo type, narrowed to L.
// It reports false both when no library is registered and when the registered
// one is not an L.
func LibraryAs[L Library](s *System, hoyoType HoyoType) (L, bool) {
	var zero L

	library, ok := s.LibraryFor(hoyoType)
	if !ok {
		return zero, false
	}

	// The caller vouches that L matches the library registered for this key.
	typed, ok := library.(L)
	if !ok {
		return zero, false
	}
	return typed, true
}

// UserAs narrows the user snapshot of an untyped game account to U. It
// reports false when the account has no user or the snapshot is not a U.
func UserAs[U User](account *GameAccount[User]) (U, bool) {
	var zero U
	if account == nil || account.User == nil {
		return zero, false
	}

	typed, ok := account.User.(U)
	if !ok {
		return zero, false
	}
	return typed, true
}

// GameAccountsAs is FetchGameAccounts with the user snapshots typed as U.
func GameAccountsAs[U User](ctx context.Context, s *System, username string, allowed ...HoyoType) ([]*GameAccount[U], error) {
	body, err := s.getJSON(ctx, s.hoyosURL(username), username, "")
	if err != nil {
		return nil, err
	}

	entries, err := decodeObjectEntries(body)
	if err != nil {
		return nil, errors.NewMalformedResponseError("hoyos response is not a JSON object", "").WithCause(err)
	}

	accounts := make([]*GameAccount[U], 0, len(entries))
	for _, entry := range entries {
		if len(allowed) > 0 {
			hoyoType, err := probeHoyoType(entry.data)
			if err != nil {
				return nil, err
			}
			// Membership test, not an index into the allow-list.
			if !lo.Contains(allowed, hoyoType) {
				continue
			}
		}

		account, err := newGameAccount[U](s, username, entry.data)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// GameAccountAs is FetchGameAccount with the user snapshot typed as U.
func GameAccountAs[U User](ctx context.Context, s *System, username, hash string) (*GameAccount[U], error) {
	body, err := s.getJSON(ctx, s.accountURL(username, hash), username, hash)
	if err != nil {
		return nil, err
	}
	return newGameAccount[U](s, username, body)
}

// CharacterBuildsAs is FetchCharacterBuilds with the build values typed as B.
func CharacterBuildsAs[B CharacterBuild](ctx context.Context, s *System, username, hash string) (map[string][]B, error) {
	body, err := s.getJSON(ctx, s.buildsURL(username, hash), username, hash)
	if err != nil {
		return nil, err
	}

	var grouped map[string][]json.RawMessage
	if err := json.Unmarshal(body, &grouped); err != nil {
		return nil, errors.NewMalformedResponseError("builds response is not a JSON object of arrays", "").WithCause(err)
	}

	builds := make(map[string][]B, len(grouped))
	for characterID, entries := range grouped {
		group := make([]B, 0, len(entries))
		for _, entry := range entries {
			// Each build entry declares its own hoyo_type; the account's
			// declared type is not trusted for dispatch.
			hoyoType, err := probeHoyoType(entry)
			if err != nil {
				return nil, err
			}

			library, ok := s.LibraryFor(hoyoType)
			if !ok {
				s.logger.Debug("dropped build entry without a registered library",
					zap.String("character_id", characterID),
					zap.Int("hoyo_type", int(hoyoType)),
				)
				continue
			}

			build, err := library.GetCharacterBuild(entry, username, hash)
			if err != nil {
				return nil, err
			}

			// The caller vouches that B matches the registered libraries.
			typed, ok := build.(B)
			if !ok {
				return nil, errors.NewConfigurationError(
					"library produced a build that does not satisfy the requested build type",
					map[string]any{"hoyo_type": int(hoyoType), "character_id": characterID},
				)
			}
			group = append(group, typed)
		}

		// Characters whose builds were all dropped are omitted entirely.
		if len(group) > 0 {
			builds[characterID] = group
		}
	}

	return builds, nil
}

func probeHoyoType(data []byte) (HoyoType, error) {
	var probe struct {
		HoyoType *int `json:"hoyo_type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, errors.NewMalformedResponseError("entry is not a JSON object", "").WithCause(err)
	}
	if probe.HoyoType == nil {
		return 0, missingField("entry", "hoyo_type")
	}
	return HoyoType(*probe.HoyoType), nil
}
