package main

import (
	"log"
	"os"
	"strings"

	"github.com/luuuc/launchgen/internal/cmd"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()

	// Syncing a console stderr can fail with EINVAL; only flush where it is meaningful.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := zap.L().Sync(); syncErr != nil {
			if !strings.Contains(strings.ToLower(syncErr.Error()), "invalid argument") {
				log.Printf("logger sync failed: %v", syncErr)
			}
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
