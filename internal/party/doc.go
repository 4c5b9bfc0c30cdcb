// Package party implements the tournament engine for the grid-based team
// singing duel: the stage state machine, round grid construction, joker
// accounting, randomized player and song allocation, and score evaluation.
//
// The engine is deterministic given a seeded random source and is driven
// entirely by discrete host events (Next, Back, SongSelected,
// LeavingHighscore). Rendering, the song catalog, and the performance
// session are injected collaborators.
package party
