// meta/meta.go
package meta

// SEARCH_DEPTH is the default number of plies searched in the mid-game.
const SEARCH_DEPTH = 6

// ENDGAME_EMPTIES is the number of empty cells at or below which the search
// solves the rest of the game exactly.
const ENDGAME_EMPTIES = 12

// RANDOM_PLIES is the number of opening plies played at random in self-play.
const RANDOM_PLIES = 4

// GAMES is the default number of self-play games per match up.
const GAMES = 10

// MAX_TURNS bounds a self-play game. An Othello game fills at most 60 cells.
const MAX_TURNS = 60
