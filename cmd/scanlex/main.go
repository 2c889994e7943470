// Command scanlex is a CLI front end over pkg/scanlex: it loads a YAML
// vocabulary and tokenizes a file or an inline string, printing the
// resulting leading/token/trailing triples.
package main

import (
	"os"

	"github.com/cwbudde/go-scanlex/cmd/scanlex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
