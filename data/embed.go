// Package data provides the default world files embedded at build time.
package data

import "embed"

// dataFS embeds all CSV files from the data directory at build time.
//
//go:embed *.csv
var dataFS embed.FS

// Default file names inside FS.
const (
	LocationsFile = "locations.csv"
	CreaturesFile = "creatures.csv"
	ItemsFile     = "items.csv"
)

// FS returns the embedded filesystem containing the default world.
func FS() embed.FS {
	return dataFS
}
