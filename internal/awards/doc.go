// Package awards maps a film's recorded award statements onto a fixed
// allow-list of high-prestige film awards and returns display labels.
//
// The knowledge-graph lookup is the one tolerant dependency of a run: any
// failure resolves to no awards instead of an error.
package awards
