package util

import "go.uber.org/zap"

// NewLogger returns a JSON production logger when env is "production" and a
// human readable development logger otherwise. Callers should defer Sync.
func NewLogger(env string) *zap.SugaredLogger {
	if env == "production" {
		return zap.Must(zap.NewProduction()).Sugar()
	}

	return zap.Must(zap.NewDevelopment()).Sugar()
}
