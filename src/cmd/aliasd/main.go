package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/jmalloc/aliasd/src/aliasd/aliases"
	"github.com/jmalloc/aliasd/src/aliasd/config"
	"github.com/jmalloc/aliasd/src/aliasd/host"
	"github.com/jmalloc/aliasd/src/aliasd/mdns/responder"
	"github.com/jmalloc/aliasd/src/aliasd/server"
)

func main() {
	cfg := config.FromEnvironment()
	logger := cfg.Logger()

	names, err := aliases.Load(cfg.AliasFile, logger)
	if err != nil {
		log.Fatal(err)
	}

	id := host.Resolve(logger)

	logging.Log(logger, "aliases = %v", names.Names())
	logging.Log(logger, "IP address = %s", id.IP)
	logging.Log(logger, "hostname = %s", id.Hostname)

	options := []server.Option{
		server.UseLogger(logger),
		server.UseReadTimeout(cfg.ReadTimeout),
		server.Announce(names.Names()...),
	}

	iface, err := cfg.NetInterface()
	if err != nil {
		log.Fatal(err)
	}
	if iface != nil {
		options = append(options, server.UseInterface(*iface))
	}

	svr, err := server.New(
		&responder.AliasAnswerer{
			Aliases:       names,
			Host:          id,
			PreferAddress: cfg.PreferAddress,
		},
		options...,
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logging.LogString(logger, "shutting down...")
	}()

	if err := svr.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
