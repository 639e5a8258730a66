// Package logger provides structured logging helpers built on log/slog.
//
//	log := logger.New(
//		logger.WithProduction("pipeline"),
//		logger.WithLevelString(cfg.LogLevel),
//	)
//
//	log.Info("server listening",
//		logger.Component("server"),
//		logger.Addr(ln.Addr().String()),
//	)
//
// Components in this module accept a *slog.Logger through options and default
// to Nop, so nothing is printed unless a logger is supplied.
package logger
