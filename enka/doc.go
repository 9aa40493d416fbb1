// Package enka is a typed client for the enka.network profile API.
//
// A System owns the transport configuration and a registry of per-game
// libraries keyed by hoyo type. The core fetches profiles, game accounts and
// character builds and delegates the game-specific parts of each payload to
// whichever library is registered for the record's hoyo type; records whose
// hoyo type has no registered library are returned without a user snapshot
// (accounts) or dropped (builds), never as errors.
package enka

// Version is the package version, embedded into the default User-Agent.
const Version = "1.0.0"
