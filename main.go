// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/ftitreefly/cliroute/cmd/cliroute"

func main() {
	cmd.Execute()
}
