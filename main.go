// SPDX-License-Identifier: MPL-2.0

package main

import cmd "stoker-cli/cmd/stoker"

func main() {
	cmd.Execute()
}
