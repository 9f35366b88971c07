// Package main provides the pottery-map CLI.
//
// pottery-map renders a static website from a pottery collection and the
// records of the companies that made it:
//   - an interactive map of factories
//   - a page per company and a company index grouped by current owner
//   - a dashboard of charts
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
