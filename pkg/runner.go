package pkg

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/golang/glog"

	"github.com/turecekt/scurv/internal/estimation"
	"github.com/turecekt/scurv/internal/pcd"
	"github.com/turecekt/scurv/internal/scurv"
	"github.com/turecekt/scurv/pkg/search_manager"
	"github.com/turecekt/scurv/tools"
)

type IRunner interface {
	RunEstimation(opts *estimation.Options) error
}

type Runner struct {
	fileFinder    tools.FileFinder
	searchManager search_manager.SearchManager
}

func NewRunner(fileFinder tools.FileFinder, searchManager search_manager.SearchManager) IRunner {
	return &Runner{
		fileFinder:    fileFinder,
		searchManager: searchManager,
	}
}

// Runs the descriptor estimation over all input files
func (runner *Runner) RunEstimation(opts *estimation.Options) error {
	glog.Infoln("Preparing list of files to process...")

	pcdFiles := runner.fileFinder.GetPcdFilesToProcess(opts)
	for i, filePath := range pcdFiles {
		glog.Infof("pcd_file path %d [%s]", i+1, filePath)
	}
	if len(pcdFiles) == 0 {
		return fmt.Errorf("no pcd files found in %s", opts.Input)
	}

	if opts.FolderProcessing {
		if err := tools.CreateDirectoryIfDoesNotExist(opts.Output); err != nil {
			return err
		}
	}

	for i, filePath := range pcdFiles {
		tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(pcdFiles)))
		if err := runner.processPcdFile(filePath, opts); err != nil {
			return err
		}
	}

	return nil
}

func (runner *Runner) processPcdFile(filePath string, opts *estimation.Options) error {
	tools.LogOutput("> reading data from pcd file...", filepath.Base(filePath))
	cloud, normals, err := pcd.LoadPointNormalCloud(filePath)
	if err != nil {
		return err
	}
	glog.Infof("pcd_file %s num_of_points: %d", filepath.Base(filePath), cloud.Len())

	// a fresh estimator per file, so no state leaks between objects
	estimator := scurv.NewSCurVEstimation()
	if opts.KSearch > 1 {
		estimator.SetKSearch(opts.KSearch)
	}
	estimator.SetInputCloud(cloud)
	estimator.SetInputNormals(normals)
	estimator.SetSearchMethod(runner.searchManager.GetSearchAlgorithm())

	tools.LogOutput("> computing with " + strconv.Itoa(estimator.GetKSearch()) + "-nearest neighbors...")
	var output scurv.SignatureCloud
	if err := estimator.Compute(&output); err != nil {
		return err
	}

	outputPath := runner.outputPathFor(filePath, opts)
	tools.LogOutput("> saving", filepath.Base(outputPath))
	if err := pcd.SaveSignatureCloud(outputPath, &output); err != nil {
		return err
	}

	tools.LogOutput("> done processing", filepath.Base(filePath))
	return nil
}

func (runner *Runner) outputPathFor(filePath string, opts *estimation.Options) string {
	if !opts.FolderProcessing {
		return opts.Output
	}
	return filepath.Join(opts.Output, getFilenameWithoutExtension(filePath)+".scurv.pcd")
}

func getFilenameWithoutExtension(filePath string) string {
	nameWext := filepath.Base(filePath)
	extension := filepath.Ext(nameWext)
	return nameWext[0 : len(nameWext)-len(extension)]
}
