// Package config defines the configuration model for the keymap tooling,
// along with the HCL loader that populates it from an optional keymapctl.hcl
// file at the project root. Built-in defaults cover a project with no config
// file at all; CLI flags override whatever the file provides.
package config
