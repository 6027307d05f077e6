// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for dreadfort-pkg.
//
// This package implements the Cobra command hierarchy for the dreadfort-pkg
// CLI: the root command, the package/plan pipeline commands, the check
// doctor command, and configuration management.
package cmd
