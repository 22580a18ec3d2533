// Package config loads the project configuration file, fragment-generator.toml.
//
// The file is looked up from a start directory towards the filesystem root.
// Values it sets are laid over Default(); keys the schema does not know are
// rejected so typos surface instead of silently falling back to defaults.
package config
