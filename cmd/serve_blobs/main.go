package main

import "context"
import "flag"
import "os"
import "os/signal"

import "github.com/neurlang/blobcount/app"
import "github.com/neurlang/blobcount/config"
import "github.com/neurlang/blobcount/server"
import "github.com/neurlang/blobcount/store"

func main() {
	configPath := flag.String("config", "", "optional .json config file")
	listen := flag.String("listen", "", "listen address, overrides config")
	db := flag.String("db", "", "sqlite database for stored datasets, overrides config")
	model := flag.String("model", "", "weights .json.lzw file loaded at start and written after training")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			println(err.Error())
			os.Exit(1)
		}
	}
	if *listen != "" {
		cfg.Listen = listen
	}
	if *db != "" {
		cfg.Database = db
	}
	if *model != "" {
		cfg.Model = model
	}

	var st *store.Store
	if path := cfg.GetDatabase(); path != "" {
		var err error
		if st, err = store.Open(path); err != nil {
			println(err.Error())
			os.Exit(1)
		}
		defer st.Close()
	}

	a := app.New(cfg, st)
	if path := cfg.GetModel(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := a.LoadModel(path); err != nil {
				println(err.Error())
			} else {
				println("loaded model", path)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := server.New(a).ListenAndServe(ctx, cfg.GetListen()); err != nil {
		println(err.Error())
	}
}
