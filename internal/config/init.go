// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"dreadfort-pkg/internal/issue"
)

// defaultConfigFile is the commented starter config written by
// 'dreadfort-pkg config init'. Everything is commented out: the defaults
// reproduce the original packaging script and unset fields keep them.
const defaultConfigFile = `// dreadfort-pkg configuration.
// All fields are optional; the defaults reproduce the stock packaging
// pipeline. Uncomment and edit what you need.

// project_name: "dreadfort"
// version_file: "VERSION"

// build: {
// 	tool: "./build.sh"
// }

// pkg: {
// 	tool:         "fpm"
// 	target:       "deb"
// 	source:       "tar"
// 	depends:      ["python2.7", "python-pip"]
// 	post_install: "pkg/post_install.deb.sh"
// 	post_remove:  "pkg/post_remove.deb.sh"
// }

// ui: {
// 	verbose: false
// }
`

// WriteDefaultConfigFile writes the commented starter config into the
// config directory and returns the written path. Refuses to overwrite an
// existing file unless force is set.
func WriteDefaultConfigFile(force bool) (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("create config directory").
			WithResource(cfgDir).
			Wrap(err).
			BuildError()
	}

	path := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(path) && !force {
		return "", issue.NewErrorContext().
			WithOperation("write config file").
			WithResource(path).
			WithSuggestion("Pass --force to overwrite the existing file").
			Wrap(fmt.Errorf("config file already exists")).
			BuildError()
	}

	if err := os.WriteFile(path, []byte(defaultConfigFile), 0o644); err != nil {
		return "", issue.NewErrorContext().
			WithOperation("write config file").
			WithResource(path).
			Wrap(err).
			BuildError()
	}

	return path, nil
}
