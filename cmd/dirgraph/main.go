package main

import (
	"fmt"

	"github.com/dirgraph/dirgraph/internal/cli"
	"github.com/dirgraph/dirgraph/internal/utils"
)

// main is the entry point for the dirgraph command.
func main() {
	applicationLogger, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf("initializing logger: %w", loggerInitializationError))
	}
	defer applicationLogger.Sync()
	if applicationExecutionError := cli.Execute(applicationLogger); applicationExecutionError != nil {
		applicationLogger.Fatal("dirgraph failed: " + applicationExecutionError.Error())
	}
}
