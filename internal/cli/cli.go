// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dirgraph/dirgraph/internal/config"
	"github.com/dirgraph/dirgraph/internal/output"
	"github.com/dirgraph/dirgraph/internal/scan"
	"github.com/dirgraph/dirgraph/internal/services/clipboard"
	"github.com/dirgraph/dirgraph/internal/utils"
)

const (
	outputDirectoryFlagName  = "output-dir"
	outputDirectoryShorthand = "o"
	ignoreFlagName           = "ignore"
	ignoreFlagShorthand      = "i"
	maxSecondsFlagName       = "max-seconds"
	configFlagName           = "config"
	previewFlagName          = "preview"
	copyFlagName             = "copy"
	versionFlagName          = "version"
	forceFlagName            = "force"
	globalFlagName           = "global"

	versionTemplate = "dirgraph version: %s\n"
	defaultPath     = "."
	rootUse         = "dirgraph [path]"
	initUse         = "init"

	rootShortDescription = "generate tree-structured size data for directory visualization"
	initShortDescription = "write a default " + config.ConfigFileName + " configuration file"

	outputDirectoryFlagDescription = "directory where the tree document is written (default: working directory)"
	ignoreFlagDescription          = "directory name to ignore; repeatable, replaces the built-in defaults"
	maxSecondsFlagDescription      = "time budget in seconds for folder size computation; 0 disables the limit"
	configFlagDescription          = "path to an explicit configuration file"
	previewFlagDescription         = "print an ASCII tree preview to stdout"
	copyFlagDescription            = "copy the JSON tree document to the clipboard"
	versionFlagDescription         = "display application version"
	forceFlagDescription           = "overwrite an existing configuration file"
	globalFlagDescription          = "write the configuration into the home directory"

	errorInvalidTimeBudgetFormat = "time budget must be non-negative, got %v"
	errorNotADirectoryFormat     = "not a directory: %s"
	errorStatRootFormat          = "accessing path %q: %w"

	infoBuildingMessage     = "building tree document; large directories may take a while"
	infoDocumentWroteFormat = "wrote directory structure as JSON"
	infoCopiedMessage       = "copied tree document to clipboard"
)

// startupBanner is shown before scanning when stdout is a terminal.
const startupBanner = `
     _ _                           _
  __| (_)_ __ __ _ _ __ __ _ _ __ | |__
 / _` + "`" + ` | | '__/ _` + "`" + ` | '__/ _` + "`" + ` | '_ \| '_ \
| (_| | | | | (_| | | | (_| | |_) | | | |
 \__,_|_|_|  \__, |_|  \__,_| .__/|_| |_|
             |___/          |_|
`

// welcomeText introduces the tool on interactive runs.
var welcomeText = heredoc.Doc(`
	Welcome! dirgraph scans a directory tree and writes its structure and
	sizes as a JSON document for interactive visualization.
	Directories containing many big files may take a while to process.
`)

// nextStepsText tells interactive users how to view the generated document.
var nextStepsText = heredoc.Doc(`
	Next steps:
	  1. Serve the directory holding index.html and data.json, e.g.: python3 -m http.server 8000
	  2. Open http://localhost:8000/index.html in your browser
`)

// rootLongDescription provides detailed help for the root command.
var rootLongDescription = heredoc.Doc(`
	dirgraph walks a directory tree, computes file and folder sizes under an
	optional time budget, and writes the result as a data.json tree document
	consumable by a hierarchical visualization.

	Folder sizes that cannot be computed before the time budget runs out are
	recorded as null rather than as misleading partial sums.
`)

// rootUsageExample demonstrates root command usage.
var rootUsageExample = heredoc.Doc(`
	  # Scan the current directory with the default ignore list
	  dirgraph

	  # Scan a project, replacing the ignore defaults, with a 30s size budget
	  dirgraph ~/src/project -i node_modules -i .git --max-seconds 30

	  # Write data.json next to the visualization and preview the tree
	  dirgraph /var/data -o ./viz --preview
`)

// Execute runs the dirgraph application.
func Execute(applicationLogger *zap.Logger) error {
	rootCommand := createRootCommand(applicationLogger)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(applicationLogger *zap.Logger) *cobra.Command {
	var showVersion bool
	var configFilePath string
	var outputDirectory string
	var ignoreNames []string
	var maxSeconds float64
	var previewEnabled bool
	var copyEnabled bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			scanPath := defaultPath
			if len(arguments) == 1 {
				scanPath = arguments[0]
			}

			applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
				ExplicitFilePath: configFilePath,
			})
			if configurationError != nil {
				return configurationError
			}

			options := resolveScanOptions(command, applicationConfiguration)
			options.scanPath = scanPath
			return runScan(applicationLogger, options)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVar(&configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.Flags().StringVarP(&outputDirectory, outputDirectoryFlagName, outputDirectoryShorthand, "", outputDirectoryFlagDescription)
	rootCommand.Flags().StringArrayVarP(&ignoreNames, ignoreFlagName, ignoreFlagShorthand, nil, ignoreFlagDescription)
	rootCommand.Flags().Float64Var(&maxSeconds, maxSecondsFlagName, config.DefaultMaxSeconds, maxSecondsFlagDescription)
	registerBooleanFlag(rootCommand.Flags(), &previewEnabled, previewFlagName, false, previewFlagDescription)
	registerBooleanFlag(rootCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// scanOptions holds the fully resolved inputs of one scan run.
type scanOptions struct {
	scanPath        string
	ignoreNames     []string
	maxSeconds      float64
	outputDirectory string
	outputFileName  string
	previewEnabled  bool
	copyEnabled     bool
}

// resolveScanOptions applies the precedence flags > local file > global file >
// built-in defaults. An ignore list from any source replaces the built-in
// defaults outright; it never extends them.
func resolveScanOptions(command *cobra.Command, applicationConfiguration config.ApplicationConfiguration) scanOptions {
	flagSet := command.Flags()
	options := scanOptions{
		ignoreNames:    config.DefaultIgnoreNames(),
		maxSeconds:     config.DefaultMaxSeconds,
		outputFileName: config.DefaultOutputFileName,
	}
	options.outputDirectory, _ = flagSet.GetString(outputDirectoryFlagName)

	if len(applicationConfiguration.Scan.Ignore) > 0 {
		options.ignoreNames = utils.DeduplicateNames(applicationConfiguration.Scan.Ignore)
	}
	if applicationConfiguration.Scan.MaxSeconds != nil {
		options.maxSeconds = *applicationConfiguration.Scan.MaxSeconds
	}
	if applicationConfiguration.Output.Filename != "" {
		options.outputFileName = applicationConfiguration.Output.Filename
	}
	if options.outputDirectory == "" {
		options.outputDirectory = applicationConfiguration.Output.Directory
	}
	if applicationConfiguration.Output.Preview != nil {
		options.previewEnabled = *applicationConfiguration.Output.Preview
	}
	if applicationConfiguration.Output.Copy != nil {
		options.copyEnabled = *applicationConfiguration.Output.Copy
	}

	if flagSet.Changed(ignoreFlagName) {
		flagIgnoreNames, _ := flagSet.GetStringArray(ignoreFlagName)
		options.ignoreNames = utils.DeduplicateNames(flagIgnoreNames)
	}
	if flagSet.Changed(maxSecondsFlagName) {
		options.maxSeconds, _ = flagSet.GetFloat64(maxSecondsFlagName)
	}
	if flagSet.Changed(previewFlagName) {
		options.previewEnabled, _ = flagSet.GetBool(previewFlagName)
	}
	if flagSet.Changed(copyFlagName) {
		options.copyEnabled, _ = flagSet.GetBool(copyFlagName)
	}
	if options.outputDirectory == "" {
		options.outputDirectory = defaultPath
	}
	return options
}

// runScan validates the root path, builds the tree document, writes it, and
// handles the optional preview and clipboard copy.
func runScan(applicationLogger *zap.Logger, options scanOptions) error {
	if options.maxSeconds < 0 {
		return fmt.Errorf(errorInvalidTimeBudgetFormat, options.maxSeconds)
	}

	rootInformation, rootStatError := os.Stat(options.scanPath)
	if rootStatError != nil {
		return fmt.Errorf(errorStatRootFormat, options.scanPath, rootStatError)
	}
	if !rootInformation.IsDir() {
		return fmt.Errorf(errorNotADirectoryFormat, options.scanPath)
	}

	if isInteractiveTerminal() {
		fmt.Print(startupBanner, "\n")
		fmt.Print(welcomeText, "\n")
	}

	applicationLogger.Info(infoBuildingMessage, zap.String("path", options.scanPath))

	treeBuilder := scan.TreeBuilder{
		IgnoreNames: options.ignoreNames,
		TimeBudget:  time.Duration(options.maxSeconds * float64(time.Second)),
		Logger:      applicationLogger,
	}
	rootNode, buildError := treeBuilder.Build(options.scanPath)
	if buildError != nil {
		return buildError
	}

	documentPath, writeError := output.WriteDocument(rootNode, options.outputDirectory, options.outputFileName)
	if writeError != nil {
		return writeError
	}
	applicationLogger.Info(infoDocumentWroteFormat,
		zap.String("path", documentPath),
		zap.String("summary", output.FormatSummaryLine(rootNode)))

	if options.previewEnabled {
		output.RenderRaw(rootNode, os.Stdout)
	}

	if options.copyEnabled {
		documentJSON, renderError := output.RenderJSON(rootNode)
		if renderError != nil {
			return renderError
		}
		if copyError := clipboard.NewService().Copy(documentJSON); copyError != nil {
			return fmt.Errorf("copying tree document to clipboard: %w", copyError)
		}
		applicationLogger.Info(infoCopiedMessage)
	}

	if isInteractiveTerminal() {
		fmt.Println(nextStepsText)
	}
	return nil
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Printf("wrote configuration to %s\n", writtenPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// isInteractiveTerminal reports whether stdout is attached to a terminal, so
// the banner and next-steps text never pollute redirected output.
func isInteractiveTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
