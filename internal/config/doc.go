// Package config carries apitrace's tool configuration: where the trace
// catalog lives, how trimmed files are named, and logging defaults. Values
// come from built-in defaults, then an optional JSON or YAML file, then
// APITRACE_* environment variables, in that order.
package config
