package feedforward

import "compress/lzw"
import "encoding/json"
import "io"
import "os"

import "github.com/pkg/errors"

type layerWeights struct {
	Name   string    `json:"name"`
	Params []float64 `json:"params"`
}

// WriteCompressedWeightsToFile writes model weights to a lzw file
func (f FeedforwardNetwork) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = f.WriteCompressedWeights(file)
	file.Close()
	return err
}

// WriteCompressedWeights writes model weights to a writer
func (f FeedforwardNetwork) WriteCompressedWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)

	_, err := lw.Write([]byte("[\n"))
	if err != nil {
		return err
	}
	for i, c := range f.combiners {
		if i != 0 {
			_, err = lw.Write([]byte(",\n"))
			if err != nil {
				return err
			}
		}
		buf, err := json.Marshal(layerWeights{Name: c.Name(), Params: c.Params()})
		if err != nil {
			return errors.Wrapf(err, "layer %d", i)
		}
		_, err = lw.Write(buf)
		if err != nil {
			return err
		}
	}
	_, err = lw.Write([]byte("]\n"))
	if err != nil {
		return err
	}
	return lw.Close()
}

// ReadCompressedWeightsFromFile reads model weights from a lzw file
func (f *FeedforwardNetwork) ReadCompressedWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	err = f.ReadCompressedWeights(file)
	file.Close()
	return err
}

// ReadCompressedWeights reads model weights from a reader. The network must be
// built with the same layers; nothing is changed unless every layer matches.
func (f *FeedforwardNetwork) ReadCompressedWeights(r io.Reader) error {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var weights []layerWeights
	if err := json.NewDecoder(lr).Decode(&weights); err != nil {
		return errors.Wrap(err, "decode weights")
	}
	if len(weights) != len(f.combiners) {
		return errors.Wrapf(ErrShape, "file has %d layers, network has %d", len(weights), len(f.combiners))
	}
	for i, c := range f.combiners {
		if weights[i].Name != c.Name() || len(weights[i].Params) != len(c.Params()) {
			return errors.Wrapf(ErrShape, "layer %d: file has %s with %d params, network has %s with %d",
				i, weights[i].Name, len(weights[i].Params), c.Name(), len(c.Params()))
		}
	}
	for i, c := range f.combiners {
		copy(c.Params(), weights[i].Params)
	}
	return nil
}
