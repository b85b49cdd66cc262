// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/elsci/chemikaze/cmd/chemikaze"

func main() {
	cmd.Execute()
}
