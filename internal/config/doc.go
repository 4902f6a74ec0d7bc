// Package config provides configuration structures and utilities for glyphcheck.
// It defines the command options, the rules file with its per-master
// profiles, and the XDG locations for configuration and run history.
package config
