// Command inkverse-browse mounts one screen against the live API and prints
// every state it passes through as a JSON line
//
//	inkverse-browse -screen comicseries -short nimona
//	inkverse-browse -screen comics -genres COMICSERIES_ROMANCE -more 2
//	printf 'c\nca\ncat\n' | inkverse-browse -screen search -more 1
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inkverse/internal/modkit"
	"inkverse/internal/modkit/module"
	"inkverse/internal/platform/config"
	"inkverse/internal/platform/logger"
	"inkverse/internal/services/api"
	screensmod "inkverse/internal/services/screens/module"
)

func main() {
	opt, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// stdout carries the states; logs go to stderr
	lo := logger.FromEnv()
	lo.Writer = os.Stderr
	logger.Init(lo)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	clients := api.ClientsFromConfig(root, logger.Named("graphql"))
	screens := screensmod.New(modkit.Deps{Log: l, Cfg: root, Clients: clients})

	b := browser{
		svc:  module.MustPortsOf[screensmod.Ports](screens).Service,
		user: clients.User,
	}
	if err := b.run(ctx, opt, os.Stdin, os.Stdout); err != nil {
		l.Error().Err(err).Str("screen", opt.screen).Msg("browse failed")
		stop()
		os.Exit(1)
	}
}
