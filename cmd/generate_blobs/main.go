package main

import "context"
import "encoding/hex"
import "flag"
import "fmt"
import "os"

import "github.com/neurlang/blobcount/config"
import "github.com/neurlang/blobcount/datasets"
import "github.com/neurlang/blobcount/datasets/blobs"
import "github.com/neurlang/blobcount/render"
import "github.com/neurlang/blobcount/store"

func main() {
	configPath := flag.String("config", "", "optional .json config file")
	count := flag.Int("count", -1, "number of samples, overrides config")
	overlap := flag.Bool("overlap", false, "allow circles to overlap")
	start := flag.Int("start", 0, "first sample of the preview strip")
	preview := flag.String("preview", "preview.png", "preview strip destination .png file, empty to skip")
	db := flag.String("db", "", "sqlite database to store the dataset in")
	name := flag.String("name", "", "name of the stored dataset")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			println(err.Error())
			os.Exit(1)
		}
	}
	if *count >= 0 {
		cfg.DatasetSize = count
	}
	allowOverlap := *overlap || cfg.GetAllowOverlap()

	dataset := blobs.NewGenerator(cfg.GetGridSize(), allowOverlap).Dataset(cfg.GetDatasetSize())
	digest := dataset.Digest()

	fmt.Printf("Generated %d samples (overlap %v)\n", dataset.Len(), allowOverlap)
	for label, n := range dataset.Histogram() {
		fmt.Printf("  %d circles: %d\n", label, n)
	}
	fmt.Printf("Label digest: %s\n", hex.EncodeToString(digest[:]))
	fmt.Printf("Memorization cost: %d bytes\n", datasets.MemorizationCost(dataset.Set()))

	if *preview != "" {
		window := dataset.Preview(*start, cfg.GetPreviewSize())
		for i, s := range window {
			fmt.Printf("  #%d: %d circles\n", *start+i, s.Label)
		}
		file, err := os.Create(*preview)
		if err != nil {
			println(err.Error())
			os.Exit(1)
		}
		err = render.PNG(file, render.Samples(window, cfg.GetZoom()))
		file.Close()
		if err != nil {
			println(err.Error())
			os.Exit(1)
		}
	}

	if *db != "" {
		st, err := store.Open(*db)
		if err != nil {
			println(err.Error())
			os.Exit(1)
		}
		defer st.Close()
		id, err := st.SaveNamed(context.Background(), *name, dataset, allowOverlap)
		if err != nil {
			println(err.Error())
			os.Exit(1)
		}
		fmt.Printf("Stored dataset %s\n", id)
	}
}
