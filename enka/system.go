package enka

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/enka-system-go/pkg/errors"
)

// Defaults applied by NewSystem for zero Options fields.
const (
	DefaultBaseURL = "https://enka.network"
	DefaultTimeout = 10 * time.Second
)

// Options configures a System. Zero fields fall back to the documented
// defaults.
type Options struct {
	// BaseURL roots both the API paths and the derived profile URLs.
	BaseURL string
	// Timeout bounds each request made through the default transport.
	Timeout time.Duration
	// UserAgent is sent with every request.
	UserAgent string
	// Logger defaults to a no-op logger for library use.
	Logger *zap.Logger
	// Transport replaces the default HTTP transport when set. Timeout and
	// UserAgent are ignored for a custom transport.
	Transport Transport
}

// System owns the hoyoType -> Library registry and the transport
// configuration. Instances are independent; register libraries during setup,
// then fetch concurrently.
type System struct {
	mu        sync.RWMutex
	libraries map[HoyoType]Library

	opts      Options
	transport Transport
	logger    *zap.Logger
}

// NewSystem constructs a System with the given options merged onto defaults.
func NewSystem(opts Options) *System {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = fmt.Sprintf("enka-system-go/%s", Version)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	transport := opts.Transport
	if transport == nil {
		transport = newHTTPTransport(opts.Timeout, opts.UserAgent)
	}

	return &System{
		libraries: make(map[HoyoType]Library),
		opts:      opts,
		transport: transport,
		logger:    opts.Logger,
	}
}

// Options returns a copy of the merged options the System runs with.
func (s *System) Options() Options {
	return s.opts
}

// Register adds a game library to this System. Registering a second library
// for an already-used hoyo type is a configuration error and leaves the
// existing entry untouched.
func (s *System) Register(library Library) error {
	if library == nil {
		return errors.NewConfigurationError("library is nil", nil)
	}

	hoyoType := library.HoyoType()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.libraries[hoyoType]; exists {
		return errors.NewConfigurationError(
			fmt.Sprintf("a library is already registered for hoyo type %d", hoyoType),
			map[string]any{"hoyo_type": int(hoyoType)},
		)
	}

	s.libraries[hoyoType] = library
	s.logger.Debug("registered game library", zap.Int("hoyo_type", int(hoyoType)))
	return nil
}

// LibraryFor returns the library registered for the hoyo type. Absence is a
// normal outcome, not an error: the registered set is expected to be a subset
// of the hoyo types the server can return.
func (s *System) LibraryFor(hoyoType HoyoType) (Library, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	library, ok := s.libraries[hoyoType]
	return library, ok
}

// LibraryCount returns the number of registered libraries.
func (s *System) LibraryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.libraries)
}
