// Package config loads the settings of the document server and of the melon
// client.
//
// Sources are merged with mergo, a later source overriding the non-zero
// fields of an earlier one:
//  1. MELON_* environment variables
//  2. command-line flags (pflag for the server, cobra flags for the client)
//  3. the JSON file named by either of them
//
// [GetServerConfig] and [GetClientConfig] return validated role views.
package config
