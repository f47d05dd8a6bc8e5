// Package config persists user preferences and resolves which provider and
// model a request should use.
//
// Preferences live in a single JSON file, by default ~/.aiwand/config.json,
// holding a default provider and per-provider model choices. Resolution
// layers explicit arguments, stored preferences, and environment variables
// into a concrete provider, model, and credential set without ever touching
// the network.
package config
