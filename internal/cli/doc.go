// Package cli defines the melon command tree.
//
// Every command resolves the client configuration from environment
// variables, persistent flags and an optional JSON file, opens the client
// runtime, and closes it when the command returns. Records are edited
// locally with create, update and delete; sync and watch push them to the
// remote document store.
package cli
