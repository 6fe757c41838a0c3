package session

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

var watchedSignals = []os.Signal{syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT}

func exitOnSignal(os.Signal) {
	os.Exit(1)
}

// watchSignals releases g when a termination signal arrives, then hands the
// signal to onSignal. The returned func stops the watch and waits for the
// watcher to exit.
func watchSignals(g *Guard, onSignal func(os.Signal), logger *log.Logger) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, watchedSignals...)

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case sig := <-sigs:
			logger.Warn("signal received, restoring terminal", "signal", sig)
			if err := g.Release(); err != nil {
				logger.Error("release after signal", "err", err)
			}
			onSignal(sig)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
		<-exited
	}
}
