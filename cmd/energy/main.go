// CLI front end for the energy engine. Prices sessions and builds nutrition
// plans against the built-in catalog without a database.
// Usage: go run ./cmd/energy burn --activity running --intensity vigorous --minutes 30 --weight 70
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
