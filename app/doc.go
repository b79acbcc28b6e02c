// Package app holds the state of one blob counting session: the current
// dataset, the trained model with its loss history and the latest predictions.
// Every handler of the demo goes through an App value.
package app
