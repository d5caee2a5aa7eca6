// Package config implements the declarative settings framework for the
// server: a registry of typed, documented, CLI-exposable settings, a live
// configuration object with controlled get/set access, and derived
// properties computed from the stored values.
//
// Settings are declared once at startup into the builtin registry. Each
// Config instance is built from a snapshot of that registry and owns its
// values exclusively; building two Configs never aliases state.
//
// The config core never logs and never retries: every failure surfaces
// synchronously to the caller, and a bad declared default aborts
// construction outright.
package config
