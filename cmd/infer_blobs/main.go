package main

import "flag"
import "fmt"
import "os"

import "github.com/neurlang/blobcount/app"
import "github.com/neurlang/blobcount/datasets/blobs"
import "github.com/neurlang/blobcount/net/feedforward"
import "github.com/neurlang/blobcount/parallel"
import "github.com/neurlang/blobcount/render"
import "github.com/neurlang/blobcount/trainer"

func main() {
	dstmodel := flag.String("dstmodel", "blobs.json.lzw", "model source .json.lzw file")
	overlap := flag.Bool("overlap", false, "allow circles to overlap")
	count := flag.Int("n", 6, "number of samples to predict")
	eval := flag.Int("eval", 200, "number of samples for the accuracy estimate, 0 to skip")
	worst := flag.Int("worst", 3, "number of worst evaluation samples to show")
	strip := flag.String("png", "predictions.png", "prediction strip destination .png file, empty to skip")
	flag.Parse()

	net, err := feedforward.NewBlobCounter(blobs.GridSize)
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}
	if err := net.ReadCompressedWeightsFromFile(*dstmodel); err != nil {
		println(err.Error())
		os.Exit(1)
	}

	samples := blobs.NewGenerator(blobs.GridSize, *overlap).Dataset(*count)
	for _, s := range samples {
		v, err := net.Infer(s.Tensor())
		if err != nil {
			println(err.Error())
			os.Exit(1)
		}
		fmt.Println(app.NewPrediction(s, v))
	}
	if *strip != "" {
		file, err := os.Create(*strip)
		if err == nil {
			err = render.PNG(file, render.Samples(samples, render.Zoom))
			file.Close()
		}
		if err != nil {
			println(err.Error())
		}
	}

	if *eval > 0 {
		set := blobs.NewGenerator(blobs.GridSize, *overlap).Dataset(*eval)
		m := trainer.Evaluate(net, set, parallel.Threads())
		fmt.Printf("[success rate] %.1f %% exact, mae %.3f over %d samples\n", 100*m.Accuracy, m.MAE, m.Samples)
		for _, i := range trainer.Worst(net, set, *worst, parallel.Threads()) {
			v, _ := net.Infer(set[i].Tensor())
			fmt.Println("worst:", app.NewPrediction(set[i], v))
		}
	}
}
