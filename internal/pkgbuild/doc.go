// SPDX-License-Identifier: MPL-2.0

// Package pkgbuild assembles and executes the dreadfort Debian packaging
// pipeline: read the project version from the VERSION file, run the build
// tool, then hand the source tarball to the packaging tool (fpm) with the
// project's fixed metadata flags.
//
// The package is split into a pure planning layer (Plan construction never
// touches the filesystem) and a Runner that executes the planned steps
// strictly in sequence, halting on the first failure and preserving the
// failing tool's exit code.
package pkgbuild
