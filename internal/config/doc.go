// Package config provides configuration loading, merging, and validation
// for the NoteHub web server and terminal client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or YAML config file
//
// The main entry points are [GetStructuredConfig] for the web server and
// [GetClientConfig] for the terminal client.
package config
