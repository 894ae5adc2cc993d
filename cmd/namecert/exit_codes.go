package main

import (
	"errors"
	"os"

	"github.com/SeakMengs/NameCert/pkg/autocert"
	flag "github.com/spf13/pflag"
)

var ErrUsage = errors.New("invalid usage")

// Exit codes for the namecert CLI.
const (
	ExitSuccess = 0 // Every certificate was generated
	ExitGeneral = 1 // A certificate failed to render
	ExitUsage   = 2 // Invalid flags or input names
	ExitIO      = 3 // File not found, permission denied
)

func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, autocert.ErrNoValidInput) ||
		errors.Is(err, autocert.ErrInvalidColor) ||
		errors.Is(err, autocert.ErrColumnNotFound) {
		return ExitUsage
	}

	// A render failure wins over the I/O error it may wrap
	var renderErr *autocert.RenderError
	if errors.As(err, &renderErr) {
		return ExitGeneral
	}

	if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
