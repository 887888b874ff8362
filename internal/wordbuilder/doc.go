// Package wordbuilder implements the Word Builder letter-scramble game.
//
// A Game holds the whole session: the current round (word, rack, placed
// slots, hints), the running score and streak, the optional challenge
// countdown and the set of word indices already used in the current cycle.
// Every user action is a method that mutates the game synchronously; the
// caller serializes access.
package wordbuilder
