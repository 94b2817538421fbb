package main

import (
	"log"
	"os"
	"strings"

	"codecat/cmd"
	"codecat/pkg/logging"
	"codecat/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	logger, err := logging.Setup(os.Getenv("CODECAT_DEBUG") != "", "codecat", version.Get().Version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := cmd.Execute(logger); err != nil {
		logger.Error("codecat execution failed", zap.Error(err))
		syncLogger(logger)
		os.Exit(1)
	}

	syncLogger(logger)
}

// syncLogger flushes the logger, tolerating the EINVAL that Sync returns
// when stderr is a terminal on some platforms.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
