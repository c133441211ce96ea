// Package config defines the ConfigurationSet a skyd process is
// started with and validates it. It does not read flags, environment
// variables, or files -- assembling a ConfigurationSet from one of
// those sources is left to the caller.
package config
