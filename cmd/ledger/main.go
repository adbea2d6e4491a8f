// Command ledger loads accounts and transfers from text files, applies the
// transfers and prints a per account report. It can also serve the ledger over HTTP.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
