package tools

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/turecekt/scurv/internal/estimation"
)

type FileFinder interface {
	GetPcdFilesToProcess(opts *estimation.Options) []string
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetPcdFilesToProcess(opts *estimation.Options) []string {
	// If folder processing is not enabled then the pcd file is given by the
	// input argument, otherwise look for pcd files in the input folder,
	// eventually excluding nested folders if the recursive option is disabled
	if !opts.FolderProcessing {
		return []string{opts.Input}
	}

	return f.getPcdFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getPcdFilesFromInputFolder(opts *estimation.Options) []string {
	var pcdFiles = make([]string, 0)

	baseInfo, _ := os.Stat(opts.Input)
	err := filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !opts.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			}
			if !info.IsDir() && strings.ToLower(filepath.Ext(info.Name())) == ".pcd" {
				pcdFiles = append(pcdFiles, path)
			}
			return nil
		},
	)

	if err != nil {
		glog.Fatal(err)
	}

	return pcdFiles
}
