package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"

	"github.com/givehub/escrow.api/config"
	"github.com/givehub/escrow.api/dao"
	"github.com/givehub/escrow.api/handlers"
	"github.com/givehub/escrow.api/service"
	"github.com/givehub/escrow.api/worker"
)

func main() {
	log.Namespace = "escrow.api"

	cfg, err := config.Get()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mongoService := dao.NewMongoService(*cfg)
	if err = mongoService.EnsureIndexes(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}

	paypalClient, err := service.GetPayPalClient(*cfg)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	mainRouter := mux.NewRouter()
	escrowService := handlers.Register(mainRouter, *cfg, mongoService, paypalClient)

	sweep := worker.NewVotingSweep(escrowService, time.Duration(cfg.VotingSweepInterval)*time.Second)
	sweep.Start(ctx)
	defer sweep.Stop()

	log.Info("Starting escrow.api service")
	err = http.ListenAndServe(cfg.BindAddr, mainRouter)
	if err != nil {
		log.Error(err)
	}
	log.Trace("Exiting escrow.api service")
}
