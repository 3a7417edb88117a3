// Package config loads and validates the enliven.json project
// configuration.
package config
