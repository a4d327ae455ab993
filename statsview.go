//go:build statsview

package main

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const (
	statsViewAddress = "localhost:12600"
	statsViewURL     = "/debug/statsview"
)

// launchStatsView starts the runtime statistics server in a new goroutine.
func launchStatsView(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(statsViewAddress))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at %s%s\n", statsViewAddress, statsViewURL)
}

func statsViewAvailable() bool {
	return true
}
