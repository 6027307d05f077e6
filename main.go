// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "dreadfort-pkg/cmd/dreadfort-pkg"
)

func main() {
	cmd.Execute()
}
