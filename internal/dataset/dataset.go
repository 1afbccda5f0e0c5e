// Package dataset embeds the built-in city name corpus.
package dataset

import (
	_ "embed"
	"strings"
)

//go:embed cities.txt
var citiesText string

// CitiesSource is the source name reported for the embedded corpus
const CitiesSource = "builtin:cities"

// Cities returns the embedded corpus of 413 city names in file order
func Cities() []string {
	lines := strings.Split(strings.TrimSpace(citiesText), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimRight(line, "\r"); line != "" {
			out = append(out, line)
		}
	}
	return out
}
