// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"golang.org/x/sync/errgroup"

	"github.com/rainbowpuffpuff/stakebonus/genesis"
	"github.com/rainbowpuffpuff/stakebonus/ledger"
	"github.com/rainbowpuffpuff/stakebonus/log"
	"github.com/rainbowpuffpuff/stakebonus/lvldb"
	"github.com/rainbowpuffpuff/stakebonus/state"
)

func initLogger(ctx *cli.Context) {
	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	output := os.Stderr
	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.NewJSONHandlerWithLevel(output, level)
	} else {
		useColor := isatty.IsTerminal(output.Fd()) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(output, level, useColor)
	}
	log.SetDefault(handler)
}

func bootstrap(ctx *cli.Context, stater *state.Stater) error {
	st := stater.NewState()
	if _, err := ledger.New(st); err == nil {
		return nil
	}

	var (
		doc *genesis.Doc
		err error
	)
	if path := ctx.String(genesisFlag.Name); path != "" {
		if doc, err = genesis.LoadFile(path); err != nil {
			return err
		}
	} else {
		doc = genesis.Devnet()
	}
	if _, err := doc.Build(st); err != nil {
		return err
	}
	if err := st.Stage().Commit(); err != nil {
		return err
	}
	logger.Info("instance initialized",
		"owner", doc.OwnerID,
		"agent", doc.AgentID,
		"model", doc.Policy.Model,
		"bonus", doc.Policy.Bonus)
	return nil
}

func openMainDB(ctx *cli.Context) (*lvldb.LevelDB, error) {
	if !ctx.Bool(persistFlag.Name) {
		return lvldb.NewMem()
	}
	return openPersistentDB(ctx)
}

func openPersistentDB(ctx *cli.Context) (*lvldb.LevelDB, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, errors.New("unable to locate a data directory, set --data-dir")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	db, err := lvldb.New(filepath.Join(dataDir, "main.db"), lvldb.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "open main database")
	}
	return db, nil
}

func startHTTPServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen on %v", addr)
	}
	server := &http.Server{Handler: handler}

	var goes errgroup.Group
	goes.Go(func() error {
		if err := server.Serve(listener); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	stop := func() {
		server.Close()
		if err := goes.Wait(); err != nil {
			logger.Warn("http server stopped", "err", err)
		}
	}
	return listener.Addr().String(), stop, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignal := make(chan os.Signal, 1)
		signal.Notify(exitSignal, os.Interrupt, syscall.SIGTERM)
		sig := <-exitSignal
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

// copy from go-ethereum
func defaultDataDir() string {
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "io.think2earn.stakebonus")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "io.think2earn.stakebonus")
		}
		return filepath.Join(home, ".stakebonus")
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
