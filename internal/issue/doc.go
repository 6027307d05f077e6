// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting for dreadfort-pkg.
//
// ActionableError carries structured context (operation, resource,
// suggestions) so CLI handlers can render helpful failures instead of bare
// error strings. The Issue catalog holds markdown guidance for the known
// environment problems surfaced by 'dreadfort-pkg check'.
package issue
