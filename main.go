package main

import (
	"fmt"
	"log"
	"os"

	"github.com/turecekt/scurv/internal/estimation"
	"github.com/turecekt/scurv/pkg"
	"github.com/turecekt/scurv/pkg/search_manager/std_search_manager"
	"github.com/turecekt/scurv/tools"
)

const VERSION = "1.0.0"

func main() {
	log.SetPrefix("[scurv] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds)

	args := os.Args[1:]
	flags := tools.ParseFlagsForCommandEstimate(args)

	if flags.Help {
		showHelp()
		return
	}

	if flags.Silent {
		tools.DisableLogger()
	}
	if !flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	opts, msg := buildOptions(args, flags)
	if msg != "" {
		log.Println("Error parsing input parameters: " + msg)
		showSyntax()
		os.Exit(1)
	}
	log.Println(tools.FmtJSONString(opts))

	runner := pkg.NewRunner(tools.NewStandardFileFinder(), std_search_manager.NewSearchManager(opts))
	if err := runner.RunEstimation(opts); err != nil {
		log.Println("Error while estimating: ", err)
		os.Exit(1)
	}
	tools.LogOutput("Estimation Completed")
}

// Validates the command line arguments and assembles them into the run
// options: one input PCD file and one output PCD file, or a pair of
// folders when folder processing is requested.
func buildOptions(args []string, flags tools.FlagsForCommandEstimate) (*estimation.Options, string) {
	opts := &estimation.Options{
		KSearch:          flags.KSearch,
		FolderProcessing: flags.Folder || flags.Recursive,
		Recursive:        flags.Recursive,
		Algorithm:        estimation.ParseSearchAlgorithm(flags.Search),
	}
	if opts.Algorithm == "" {
		return nil, "search algorithm should be either kdtree or linear"
	}

	if opts.FolderProcessing {
		bare := tools.ParseBareArguments(args)
		if len(bare) != 2 {
			return nil, "need one input folder and one output folder to continue"
		}
		opts.Input, opts.Output = bare[0], bare[1]
		if info, err := os.Stat(opts.Input); err != nil || !info.IsDir() {
			return nil, "input folder not found"
		}
		return opts, ""
	}

	pcdFiles := tools.ParseFileExtensionArgument(args, ".pcd")
	if len(pcdFiles) != 2 {
		return nil, "need one input PCD file and one output PCD file to continue"
	}
	opts.Input, opts.Output = pcdFiles[0], pcdFiles[1]
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return nil, "input file not found"
	}
	return opts, ""
}

func showSyntax() {
	fmt.Println("Syntax is: scurv-estimation input.pcd output.pcd <options>")
	fmt.Println("Use -h for the full option list.")
}

func showHelp() {
	fmt.Println("Estimate SCurV (210) descriptors for point clouds with surface normals.")
	fmt.Println("v." + VERSION)
	fmt.Println("")
	fmt.Println("Syntax is: scurv-estimation input.pcd output.pcd <options>")
	fmt.Println("  where options are:")
	fmt.Println("    -k N         use a fixed number of N-nearest neighbors around each point (default: 19, applied when N > 1)")
	fmt.Println("    -search S    neighbor search structure, kdtree or linear (default: kdtree)")
	fmt.Println("    -folder      treat input and output as folders and process every .pcd file found")
	fmt.Println("    -recursive   look for .pcd files in nested folders too (implies -folder)")
	fmt.Println("    -silent      suppress all non-error progress messages")
	fmt.Println("    -timestamp   add timestamps to progress messages")
	fmt.Println("    -h           display this help")
}
