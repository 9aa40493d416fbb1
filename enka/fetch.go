package enka

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kapu/enka-system-go/pkg/errors"
)

// FetchProfile fetches one enka.network profile by username.
func (s *System) FetchProfile(ctx context.Context, username string) (*Profile, error) {
	body, err := s.getJSON(ctx, s.profileURL(username), username, "")
	if err != nil {
		return nil, err
	}
	return newProfile(s, body)
}

// FetchGameAccounts fetches the game accounts linked under a profile, in the
// order the server returned them. When allowed hoyo types are given, accounts
// of other types are excluded before construction.
func (s *System) FetchGameAccounts(ctx context.Context, username string, allowed ...HoyoType) ([]*GameAccount[User], error) {
	return GameAccountsAs[User](ctx, s, username, allowed...)
}

// FetchGameAccount fetches one linked game account by username and hash.
func (s *System) FetchGameAccount(ctx context.Context, username, hash string) (*GameAccount[User], error) {
	return GameAccountAs[User](ctx, s, username, hash)
}

// FetchCharacterBuilds fetches the saved character builds of one linked game
// account, keyed by character id. Each build entry is dispatched on its own
// hoyo_type; entries without a registered library are dropped, and characters
// whose builds are all dropped are omitted from the result.
func (s *System) FetchCharacterBuilds(ctx context.Context, username, hash string) (map[string][]CharacterBuild, error) {
	return CharacterBuildsAs[CharacterBuild](ctx, s, username, hash)
}

func (s *System) profileURL(username string) string {
	return fmt.Sprintf("%s/api/profile/%s/", s.opts.BaseURL, url.PathEscape(username))
}

func (s *System) hoyosURL(username string) string {
	return fmt.Sprintf("%s/api/profile/%s/hoyos/", s.opts.BaseURL, url.PathEscape(username))
}

func (s *System) accountURL(username, hash string) string {
	return fmt.Sprintf("%s/api/profile/%s/hoyos/%s/", s.opts.BaseURL, url.PathEscape(username), url.PathEscape(hash))
}

func (s *System) buildsURL(username, hash string) string {
	return fmt.Sprintf("%s/api/profile/%s/hoyos/%s/builds/", s.opts.BaseURL, url.PathEscape(username), url.PathEscape(hash))
}

// getJSON performs one GET and maps the status code onto the error taxonomy.
// The username/hash identify the addressed resource for 404 reporting.
func (s *System) getJSON(ctx context.Context, requestURL, username, hash string) ([]byte, error) {
	s.logger.Debug("fetching enka resource", zap.String("url", requestURL))

	resp, err := s.transport.Fetch(ctx, requestURL)
	if err != nil {
		// Timeouts and other transport failures share the upstream category.
		return nil, errors.NewUpstreamError("request failed", 0, "", requestURL).WithCause(err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NewNotFoundError(username, hash, resp.StatusCode, resp.Status, requestURL)
	default:
		return nil, errors.NewUpstreamError(
			fmt.Sprintf("unexpected response status %d", resp.StatusCode),
			resp.StatusCode, resp.Status, requestURL,
		)
	}
}

type rawObjectEntry struct {
	key  string
	data json.RawMessage
}

// decodeObjectEntries walks a top-level JSON object with the token stream so
// the server's key order survives; decoding into a map would shuffle it.
func decodeObjectEntries(body []byte) ([]rawObjectEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var entries []rawObjectEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", tok)
		}

		var data json.RawMessage
		if err := dec.Decode(&data); err != nil {
			return nil, err
		}

		entries = append(entries, rawObjectEntry{key: key, data: data})
	}

	return entries, nil
}

func missingField(resource, field string) *errors.MalformedResponseError {
	return errors.NewMalformedResponseError(
		fmt.Sprintf("%s response is missing required field %q", resource, field),
		field,
	)
}
