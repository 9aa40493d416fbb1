package enka_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/kapu/enka-system-go/enka"
)

type stubTransport struct {
	mu        sync.Mutex
	responses map[string]*enka.Response
	err       error
	requests  []string
}

func (t *stubTransport) Fetch(_ context.Context, url string) (*enka.Response, error) {
	t.mu.Lock()
	t.requests = append(t.requests, url)
	t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	if resp, ok := t.responses[url]; ok {
		return resp, nil
	}
	return &enka.Response{StatusCode: http.StatusNotFound, Status: "404 Not Found"}, nil
}

func okResponse(body string) *enka.Response {
	return &enka.Response{StatusCode: http.StatusOK, Status: "200 OK", Body: []byte(body)}
}

type fakeUser struct {
	hoyoType enka.HoyoType
	hash     string
}

func (u *fakeUser) HoyoType() enka.HoyoType { return u.hoyoType }

type fakeBuild struct {
	hoyoType enka.HoyoType
	name     string
	username string
	hash     string
}

func (b *fakeBuild) HoyoType() enka.HoyoType { return b.hoyoType }

// fakeLibrary produces *fakeUser and *fakeBuild values, echoing back fields
// of the raw payloads so tests can check what it was handed.
type fakeLibrary struct {
	hoyoType enka.HoyoType
	userErr  error
	buildErr error
}

func (l *fakeLibrary) HoyoType() enka.HoyoType { return l.hoyoType }

func (l *fakeLibrary) GetUser(data []byte) (enka.User, error) {
	if l.userErr != nil {
		return nil, l.userErr
	}
	var raw struct {
		Hash string `json:"hash"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &fakeUser{hoyoType: l.hoyoType, hash: raw.Hash}, nil
}

func (l *fakeLibrary) GetCharacterBuild(data []byte, username, hash string) (enka.CharacterBuild, error) {
	if l.buildErr != nil {
		return nil, l.buildErr
	}
	var raw struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &fakeBuild{hoyoType: l.hoyoType, name: raw.Name, username: username, hash: hash}, nil
}

// altUser and altLibrary exist so tests can exercise type mismatches between
// a requested type parameter and what a registered library produces.
type altUser struct {
	hoyoType enka.HoyoType
}

func (u *altUser) HoyoType() enka.HoyoType { return u.hoyoType }

type altLibrary struct {
	hoyoType enka.HoyoType
}

func (l *altLibrary) HoyoType() enka.HoyoType { return l.hoyoType }

func (l *altLibrary) GetUser([]byte) (enka.User, error) {
	return &altUser{hoyoType: l.hoyoType}, nil
}

func (l *altLibrary) GetCharacterBuild([]byte, string, string) (enka.CharacterBuild, error) {
	return &fakeBuild{hoyoType: l.hoyoType}, nil
}

func newTestSystem(t *testing.T, transport enka.Transport, libraries ...enka.Library) *enka.System {
	t.Helper()
	system := enka.NewSystem(enka.Options{Transport: transport})
	for _, library := range libraries {
		require.NoError(t, system.Register(library))
	}
	return system
}
