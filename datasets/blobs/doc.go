// Package blobs provides the synthetic blob counting dataset: square binary grids
// with up to eight disks placed by bounded rejection sampling, labelled with the
// number of disks that were actually placed.
package blobs
