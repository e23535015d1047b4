// SPDX-License-Identifier: MPL-2.0

package main

import cmd "gotopts-cli/cmd/gotopts"

func main() {
	cmd.Execute()
}
