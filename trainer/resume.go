package trainer

import "github.com/neurlang/blobcount/net/feedforward"

// Resume loads the weights stored at dstmodel into net when resume is set.
// It reports whether weights were loaded.
func Resume(net *feedforward.FeedforwardNetwork, resume *bool, dstmodel *string) bool {
	if resume != nil && *resume && dstmodel != nil && *dstmodel != "" {
		err := net.ReadCompressedWeightsFromFile(*dstmodel)
		if err != nil {
			println(err.Error())
			return false
		}
		return true
	}
	return false
}
