// Package main serves the interactive blob counting demo over HTTP: generate a
// dataset, browse it, train the network while watching the loss chart and
// compare predictions with the true counts.
package main
