// Package config loads configuration structs from environment variables.
//
// A .env file in the working directory is loaded once per process, then
// env tags on the struct fields drive parsing. Every package with
// environment-driven settings (pg, session, audit) declares its own Config
// struct and loads it through this package.
package config
