// Package trainer provides high-level training orchestration for the counting networks.
// It runs mini-batch epochs over a dataset on all CPU cores, reports per epoch
// losses to callbacks and evaluates the network on held out samples.
package trainer
