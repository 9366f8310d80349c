// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/juniensis/cedar/cmd/cedar"

func main() {
	cmd.Execute()
}
