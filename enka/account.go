package enka

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/kapu/enka-system-go/pkg/errors"
)

// GameServerRegion is the region of the server the game account was created
// on.
type GameServerRegion string

const (
	RegionUnknown GameServerRegion = ""
	RegionCN      GameServerRegion = "CN"
	RegionB       GameServerRegion = "B"
	RegionNA      GameServerRegion = "NA"
	RegionEU      GameServerRegion = "EU"
	RegionAsia    GameServerRegion = "ASIA"
	RegionTW      GameServerRegion = "TW"
)

// gameAccountRaw mirrors one account object of the hoyos responses. Pointer
// fields distinguish absent values from zero values.
type gameAccountRaw struct {
	Hash                    *string        `json:"hash"`
	HoyoType                *int           `json:"hoyo_type"`
	UID                     *int64         `json:"uid"`
	Verified                *bool          `json:"verified"`
	Public                  *bool          `json:"public"`
	UIDPublic               *bool          `json:"uid_public"`
	LivePublic              *bool          `json:"live_public"`
	VerificationCode        *string        `json:"verification_code"`
	VerificationExpire      *int64         `json:"verification_expire"`
	VerificationCodeRetries *int           `json:"verification_code_retries"`
	Region                  *string        `json:"region"`
	Order                   *int           `json:"order"`
	AvatarOrder             map[string]int `json:"avatar_order"`
}

// GameAccount is one per-game account linked under an enka.network profile.
// U is the game-specific user type produced by the registered library; the
// untyped resolvers use the User interface. User is the zero U when no
// library was registered for the account's hoyo type at construction time.
type GameAccount[U User] struct {
	// Username is the owning enka.network username, not an in-game nickname.
	Username string
	// Hash is the opaque stable identifier of this linked account.
	Hash     string
	HoyoType HoyoType
	// User is the game-specific snapshot, or the zero U if no library is
	// registered for HoyoType.
	User U
	// UID is nil when the owner has not made the in-game UID public.
	UID                     *int64
	IsVerified              bool
	IsPublic                bool
	IsUIDPublic             bool
	IsLivePublic            bool
	VerificationCode        *string
	VerificationExpires     *time.Time
	VerificationCodeRetries *int
	Region                  GameServerRegion
	Order                   int
	// CharacterOrder maps character ids to their display order, nil when the
	// account has none set.
	CharacterOrder map[string]int
	// URL is the canonical account page derived from the configured base URL.
	URL string

	raw    []byte
	system *System
}

// newGameAccount builds one account snapshot. The library lookup happens here,
// against the registry as it is at this instant; the single type assertion
// binding the library's user value to U lives in this function.
func newGameAccount[U User](system *System, username string, data []byte) (*GameAccount[U], error) {
	var raw gameAccountRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewMalformedResponseError("game account is not a JSON object", "").WithCause(err)
	}

	if raw.Hash == nil {
		return nil, missingField("game account", "hash")
	}
	if raw.HoyoType == nil {
		return nil, missingField("game account", "hoyo_type")
	}
	if raw.Verified == nil {
		return nil, missingField("game account", "verified")
	}
	if raw.Public == nil {
		return nil, missingField("game account", "public")
	}
	if raw.UIDPublic == nil {
		return nil, missingField("game account", "uid_public")
	}
	if raw.Region == nil {
		return nil, missingField("game account", "region")
	}
	if raw.Order == nil {
		return nil, missingField("game account", "order")
	}

	account := &GameAccount[U]{
		Username:                username,
		Hash:                    *raw.Hash,
		HoyoType:                HoyoType(*raw.HoyoType),
		UID:                     raw.UID,
		IsVerified:              *raw.Verified,
		IsPublic:                *raw.Public,
		IsUIDPublic:             *raw.UIDPublic,
		VerificationCode:        raw.VerificationCode,
		VerificationCodeRetries: raw.VerificationCodeRetries,
		Region:                  GameServerRegion(*raw.Region),
		Order:                   *raw.Order,
		CharacterOrder:          raw.AvatarOrder,
		URL:                     fmt.Sprintf("%s/u/%s/%s/", system.opts.BaseURL, username, *raw.Hash),
		raw:                     data,
		system:                  system,
	}

	if raw.LivePublic != nil {
		account.IsLivePublic = *raw.LivePublic
	}

	if raw.VerificationExpire != nil {
		expires := time.UnixMilli(*raw.VerificationExpire)
		account.VerificationExpires = &expires
	}

	if library, ok := system.LibraryFor(account.HoyoType); ok {
		user, err := library.GetUser(data)
		if err != nil {
			return nil, err
		}
		// The caller vouches that U matches the library registered for this
		// hoyo type; this assertion is where that claim is checked.
		typed, ok := user.(U)
		if !ok {
			return nil, errors.NewConfigurationError(
				fmt.Sprintf("library for hoyo type %d produced %T, which does not satisfy the requested user type", account.HoyoType, user),
				map[string]any{"hoyo_type": int(account.HoyoType)},
			)
		}
		account.User = typed
	}

	return account, nil
}

// RawData returns the JSON payload the account was built from.
func (a *GameAccount[U]) RawData() []byte {
	return a.raw
}

// FetchBuilds fetches the saved character builds of this game account.
func (a *GameAccount[U]) FetchBuilds(ctx context.Context) (map[string][]CharacterBuild, error) {
	return a.system.FetchCharacterBuilds(ctx, a.Username, a.Hash)
}
