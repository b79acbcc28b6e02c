// Package main provides a demo program for generating a synthetic blob counting dataset.
// It prints the label histogram of the generated samples, writes a preview strip
// and optionally stores the dataset in sqlite for later training.
package main
