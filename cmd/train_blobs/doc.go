// Package main provides a demo program for training the blob counting network.
// A convolutional regression network learns to count the circles on generated
// 24×24 grids, reporting the loss and validation loss after every epoch.
package main
