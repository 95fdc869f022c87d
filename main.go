package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/sheikhrachel/go-life/utils"
)

const configFile = "config.json"

// loadConfig reads config.json and .env overrides, falling back to defaults
func loadConfig() utils.Config {
	if err := utils.LoadEnvFile(); err != nil {
		logrus.WithError(err).Debug("No .env file loaded")
	}

	config, err := utils.LoadConfig(configFile)
	if err != nil {
		logrus.WithError(err).Info("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}

	if config, err = utils.ApplyEnv(config); err != nil {
		logrus.WithError(err).Fatal("Invalid environment override")
	}
	if err = config.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	return config
}

// readLines forwards stdin lines until EOF, then closes the channel
func readLines(lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		logrus.WithError(err).Warn("Failed reading input")
	}
}

func main() {
	logrus.SetOutput(os.Stderr)

	config := loadConfig()
	g := initializeGame(config, os.Stdout)
	g.clearScreen = true

	logrus.WithFields(logrus.Fields{
		"rows":        config.Rows(),
		"cols":        config.Cols(),
		"interval_ms": config.IntervalMS,
		"memory_pool": config.UseMemoryPool,
		"parallel":    config.UseParallel,
	}).Info("Board initialized")

	g.render()
	fmt.Println("Type 'help' for commands, Ctrl+C to exit")

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	lines := make(chan string)
	go readLines(lines)

	for {
		select {
		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			g.runner.Stop()
			g.displayFinalStats()
			return
		case line, ok := <-lines:
			if !ok {
				g.runner.Stop()
				g.displayFinalStats()
				return
			}
			if line == "" {
				continue
			}

			cmd, err := parseCommand(line)
			if err != nil {
				fmt.Println(err)
				continue
			}
			quit, err := g.execute(cmd)
			if err != nil {
				fmt.Println(err)
			}
			if quit {
				g.displayFinalStats()
				return
			}
		}
	}
}
