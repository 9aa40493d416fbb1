package enka

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/kapu/enka-system-go/pkg/errors"
)

// profileRaw mirrors the /api/profile/{username}/ response. Pointer fields
// distinguish absent values from zero values.
type profileRaw struct {
	Username *string           `json:"username"`
	Profile  *profileDetailRaw `json:"profile"`
}

type profileDetailRaw struct {
	Bio         *string `json:"bio"`
	Avatar      *string `json:"avatar"`
	ImageURL    *string `json:"image_url"`
	Level       *int    `json:"level"`
	SignupState *int    `json:"signup_state"`
}

// Profile is one enka.network account, an immutable snapshot of the profile
// payload.
type Profile struct {
	// Username is the enka.network username, not an in-game nickname.
	Username    string
	Bio         string
	Avatar      *string
	ImageURL    *string
	Level       int
	SignupState int
	// URL is the canonical profile page derived from the configured base URL.
	URL string

	raw    []byte
	system *System
}

func newProfile(system *System, data []byte) (*Profile, error) {
	var raw profileRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewMalformedResponseError("profile response is not a JSON object", "").WithCause(err)
	}

	if raw.Username == nil {
		return nil, missingField("profile", "username")
	}
	if raw.Profile == nil {
		return nil, missingField("profile", "profile")
	}
	detail := raw.Profile
	if detail.Bio == nil {
		return nil, missingField("profile", "bio")
	}
	if detail.Level == nil {
		return nil, missingField("profile", "level")
	}
	if detail.SignupState == nil {
		return nil, missingField("profile", "signup_state")
	}

	return &Profile{
		Username:    *raw.Username,
		Bio:         *detail.Bio,
		Avatar:      detail.Avatar,
		ImageURL:    detail.ImageURL,
		Level:       *detail.Level,
		SignupState: *detail.SignupState,
		URL:         fmt.Sprintf("%s/u/%s/", system.opts.BaseURL, *raw.Username),
		raw:         data,
		system:      system,
	}, nil
}

// RawData returns the JSON payload the profile was built from.
func (p *Profile) RawData() []byte {
	return p.raw
}

// FetchGameAccounts fetches the game accounts linked to this profile.
func (p *Profile) FetchGameAccounts(ctx context.Context, allowed ...HoyoType) ([]*GameAccount[User], error) {
	return p.system.FetchGameAccounts(ctx, p.Username, allowed...)
}

// FetchGameAccount fetches one linked game account by its hash.
func (p *Profile) FetchGameAccount(ctx context.Context, hash string) (*GameAccount[User], error) {
	return p.system.FetchGameAccount(ctx, p.Username, hash)
}

// FetchCharacterBuilds fetches the saved character builds of one linked game
// account by its hash.
func (p *Profile) FetchCharacterBuilds(ctx context.Context, hash string) (map[string][]CharacterBuild, error) {
	return p.system.FetchCharacterBuilds(ctx, p.Username, hash)
}
