// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"cpsc/repl"
)

func main() {
	fmt.Println("cpsc REPL — enter an expression, e.g. (+ 1.0 2.0)")
	repl.Start(os.Stdin)
}
