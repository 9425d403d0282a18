package main

import (
	"os"
	"os/signal"
	"portfolioanalyzer/cmd"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	log := zap.S()
	log.Infow("starting api", "commitHash", os.Getenv("commit_hash"))

	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	// SIGHUP re-reads the catalog overrides without a restart
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			if err := cmd.ReloadCatalog(deps.CatalogStore, deps.Secrets.CatalogOverridesPath); err != nil {
				log.Errorw("catalog reload failed", "error", err)
			}
		}
	}()

	err = deps.ApiHandler.StartApi(deps.Secrets.Port)
	if err != nil {
		log.Fatal(err)
	}
}
