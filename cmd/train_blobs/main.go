package main

import "context"
import "flag"
import "fmt"
import "os"
import "os/signal"

import "github.com/neurlang/blobcount/config"
import "github.com/neurlang/blobcount/datasets/blobs"
import "github.com/neurlang/blobcount/net/feedforward"
import "github.com/neurlang/blobcount/parallel"
import "github.com/neurlang/blobcount/render"
import "github.com/neurlang/blobcount/store"
import "github.com/neurlang/blobcount/trainer"

func main() {
	configPath := flag.String("config", "", "optional .json config file")
	dstmodel := flag.String("dstmodel", "blobs.json.lzw", "model destination .json.lzw file")
	resume := flag.Bool("resume", false, "resume training")
	overlap := flag.Bool("overlap", false, "allow circles to overlap")
	epochs := flag.Int("epochs", 0, "number of epochs, overrides config")
	db := flag.String("db", "", "sqlite database holding stored datasets")
	load := flag.String("load", "", "id of a stored dataset to train on instead of generating one")
	losspng := flag.String("losspng", "loss.png", "loss curve destination .png file, empty to skip")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			println(err.Error())
			os.Exit(1)
		}
	}
	if *epochs > 0 {
		cfg.Epochs = epochs
	}

	var dataset blobs.Dataslice
	if *load != "" {
		path := *db
		if path == "" {
			path = cfg.GetDatabase()
		}
		st, err := store.Open(path)
		if err != nil {
			println(err.Error())
			os.Exit(1)
		}
		var info store.Info
		dataset, info, err = st.Load(context.Background(), *load)
		st.Close()
		if err != nil {
			println(err.Error())
			os.Exit(1)
		}
		fmt.Printf("Loaded dataset %s (%d samples)\n", info.ID, info.Samples)
	} else {
		dataset = blobs.NewGenerator(cfg.GetGridSize(), *overlap || cfg.GetAllowOverlap()).Dataset(cfg.GetDatasetSize())
	}
	train, validation := dataset.Split(cfg.GetTrainSplit())

	net, err := feedforward.NewBlobCounter(cfg.GetGridSize())
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}
	fmt.Print(net.String())
	if trainer.Resume(net, resume, dstmodel) {
		println("resumed from", *dstmodel)
	}

	h := cfg.HyperParameters()
	fmt.Printf("Training on %s, %d threads, %d train / %d validation samples\n",
		parallel.Describe(), h.Threads, train.Len(), validation.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	history, err := trainer.Fit(ctx, net, train, validation, h, trainer.LogCallback)
	if err != nil {
		println(err.Error())
	}
	if history.Len() == 0 {
		os.Exit(1)
	}

	if *dstmodel != "" {
		if err := net.WriteCompressedWeightsToFile(*dstmodel); err != nil {
			println(err.Error())
		}
	}
	if *losspng != "" {
		file, err := os.Create(*losspng)
		if err == nil {
			err = render.LossPNG(file, history)
			file.Close()
		}
		if err != nil {
			println(err.Error())
		}
	}

	evaluate := trainer.NewEvaluateFunc(net, validation, h.Threads)
	m := evaluate()
	fmt.Printf("[validation] mse %.4f mae %.4f std %.4f exact %.1f%% over %d samples\n",
		m.MSE, m.MAE, m.StdDev, 100*m.Accuracy, m.Samples)
}
