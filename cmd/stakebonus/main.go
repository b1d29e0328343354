// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/rainbowpuffpuff/stakebonus/api"
	"github.com/rainbowpuffpuff/stakebonus/ledger"
	"github.com/rainbowpuffpuff/stakebonus/log"
	"github.com/rainbowpuffpuff/stakebonus/metrics"
	"github.com/rainbowpuffpuff/stakebonus/runtime"
	"github.com/rainbowpuffpuff/stakebonus/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "stakebonus",
		Usage:     "Solo node of the bonus staking ledger",
		Copyright: "2026 think2earn",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			persistFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			verbosityFlag,
			jsonLogsFlag,
		},
		Action: runAction,
		Commands: []cli.Command{
			{
				Name:  "export",
				Usage: "print the instance record and exit",
				Flags: []cli.Flag{
					dataDirFlag,
					verbosityFlag,
					jsonLogsFlag,
				},
				Action: exportAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAction(ctx *cli.Context) error {
	initLogger(ctx)
	logger.Info("starting node", "version", fullVersion())

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	db, err := openMainDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	stater := state.NewStater(db)
	if err := bootstrap(ctx, stater); err != nil {
		return err
	}

	bank := runtime.NewBank()
	dispatcher := runtime.NewDispatcher(bank.Apply)
	rt, err := runtime.New(stater, dispatcher)
	if err != nil {
		return err
	}

	apiHandler := api.New(rt, bank, ctx.String(apiCorsFlag.Name), ctx.Bool(enableMetricsFlag.Name))
	apiURL, closeAPI, err := startHTTPServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		return err
	}
	defer closeAPI()
	logger.Info("API started", "url", "http://"+apiURL)

	if ctx.Bool(enableMetricsFlag.Name) {
		metricsURL, closeMetrics, err := startHTTPServer(ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler())
		if err != nil {
			return err
		}
		defer closeMetrics()
		logger.Info("metrics started", "url", "http://"+metricsURL+"/metrics")
	}

	exitCtx := handleExitSignal()
	<-exitCtx.Done()

	// deliver what is still queued before shutting down
	return dispatcher.Stop()
}

func exportAction(ctx *cli.Context) error {
	initLogger(ctx)

	db, err := openPersistentDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	l, err := ledger.New(state.NewStater(db).NewState())
	if err != nil {
		return err
	}
	snapshot, err := l.Snapshot()
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
