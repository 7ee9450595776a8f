// Package engine sequences turns between players and runs computer searches
// in the background.
package engine

import "errors"

var (
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameOver       = errors.New("game is over")
	ErrSearchInFlight = errors.New("search already in flight")
)
