package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SeakMengs/NameCert/internal/config"
	"github.com/SeakMengs/NameCert/internal/env"
	"github.com/SeakMengs/NameCert/internal/util"
	"go.uber.org/automaxprocs/maxprocs"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Debugf))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], cfg, logger, os.Stdout)
	stop()

	code := exitCodeFor(err)
	if code != ExitSuccess {
		fmt.Fprintln(os.Stderr, "Error generating PDFs:", err)
	}

	_ = logger.Sync()
	os.Exit(code)
}
