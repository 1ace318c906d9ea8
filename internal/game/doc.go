// Package game implements the blackjack table state: hand valuation with
// soft-ace resolution, and the Table that owns the shoe, both hands and
// the Hi-Lo counter. The Table is the only mutator of the shoe; everything
// the presentation layer consumes (probabilities, counts, totals) is a
// read-only query against it.
package game
