// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/ananyagoenka/bril/cmd/bril"

func main() {
	cmd.Execute()
}
