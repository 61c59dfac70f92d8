// Package main provides the obs-mapper command.
//
// obs-mapper binds clinical form definitions to stored observations:
//   - lint checks a form definition
//   - ids assigns numeric ids to controls that have none
//   - build and show bind a form to a saved encounter
//   - edit applies values to a form and saves the encounter
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
