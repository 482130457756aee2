/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seipan/bstviz/bst"
	"github.com/seipan/bstviz/render"
	"github.com/seipan/bstviz/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the web visualizer",
	RunE: func(cmd *cobra.Command, args []string) error {
		bind, err := cmd.Flags().GetString("bind")
		if err != nil {
			return err
		}
		delay, err := cmd.Flags().GetDuration("delay")
		if err != nil {
			return err
		}
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Bind:   bind,
			Delay:  delay,
			Debug:  debug,
			Render: render.DefaultConfig(),
			Logger: logger,
		})

		errc := make(chan error, 1)
		go func() {
			errc <- srv.Start()
		}()

		// Wait for a signal to exit.
		exitSignals := make(chan os.Signal, 1)
		signal.Notify(exitSignals, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-exitSignals:
			logger.Info("received OS exit signal", "signal", sig)
		case err := <-errc:
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
			return err
		}
		logger.Info("graceful shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("bind", envOr("BSTVIZ_BIND", ":8400"), "local IP/port to bind to")
	serveCmd.Flags().Duration("delay", envDuration("BSTVIZ_DELAY", bst.DefaultDelay), "pause between animation frames")
	serveCmd.Flags().Bool("debug", envOr("DEBUG", "") != "", "serve static files from disk")
}
