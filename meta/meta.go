// meta/meta.go
package meta

// ROWS defines the default board height.
const ROWS = 6

// COLUMNS defines the default board width.
const COLUMNS = 7

// TO_WIN defines how many discs in a line win the game.
const TO_WIN = 4

// ITERATIONS defines the number of search iterations per move.
const ITERATIONS = 5000

// GO_ROUTINES defines the number of goroutines to use for arena games.
const GO_ROUTINES = 8

// ARENA_GAMES defines the number of games per matchup.
const ARENA_GAMES = 20

// OUTPUT_DIR defines where experiment records are written.
const OUTPUT_DIR = "experiments/results"

// LOG_LEVEL defines the default zerolog level.
const LOG_LEVEL = "info"
