// Command ledgerctl runs operator tasks against the questledger database.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
