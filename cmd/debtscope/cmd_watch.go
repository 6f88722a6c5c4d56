package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/debtscope/debtscope/pkg/config"
	"github.com/debtscope/debtscope/pkg/report"
	"github.com/debtscope/debtscope/pkg/scan"
	"github.com/debtscope/debtscope/pkg/store"
	"github.com/debtscope/debtscope/pkg/watcher"
)

// cmdWatch runs an initial scan, then rescans whenever the debounced
// watcher reports changes, printing a one-line delta each time.
func cmdWatch(args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	st, err := store.Open(storeDir(root, cfg))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	rescan := func() {
		res, err := scan.Run(context.Background(), root, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
			return
		}
		if prev, err := st.LatestScan(); err == nil {
			res.Trends = report.ComputeTrends(prev, res)
		}
		if err := st.SaveScan(res); err != nil {
			fmt.Fprintf(os.Stderr, "saving scan: %v\n", err)
			return
		}
		fmt.Printf("%s  rating %s  %d findings  %s debt\n",
			res.Timestamp.Format("15:04:05"), res.Debt.Rating,
			res.Summary.TotalFindings, formatMinutes(res.Debt.TotalMinutes))
	}

	rescan()

	w, err := watcher.New(watcher.Config{Root: root},
		watcher.ChangeHandlerFunc(func(files map[string]fsnotify.Op) {
			rescan()
		}))
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
