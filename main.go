// main is the entry point for the visulog CLI.
package main

import (
	"github.com/huangsam/visulog/cmd"
	"github.com/huangsam/visulog/internal/contract"
	"github.com/huangsam/visulog/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Close stores before any exit so SQLite files are flushed.
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("visulog failed", err)
	}
}
