// Package main provides a demo program for running inference with a trained blob
// counting network on freshly generated grids.
package main
