// Package logging provides structured logging using uber/zap.
//
// Production output is JSON; development output is colored console text.
// Components take a named child logger and sessions add their identifier:
//
//	logger, err := logging.New(logging.Config{Level: "info"})
//	termLog := logger.Component("terminal")
//	termLog.Session("abc").Info("Spawned shell", zap.String("shell", "/bin/zsh"))
package logging
