package estimation

import "strings"

type SearchAlgorithm string

const (
	// Kd-tree spatial index, the default neighbor search structure.
	KdTree SearchAlgorithm = "KDTREE"

	// Exhaustive scan. Useful as ground truth and for small clouds where
	// scanning beats building an index.
	Linear SearchAlgorithm = "LINEAR"
)

func (a SearchAlgorithm) String() string {
	return string(a)
}

func ParseSearchAlgorithm(value string) SearchAlgorithm {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	if normalizedValue == "KDTREE" {
		return KdTree
	} else if normalizedValue == "LINEAR" {
		return Linear
	}
	return ""
}

// Contains the options needed for one estimation run
type Options struct {
	Input            string          // Input PCD file, or folder when FolderProcessing is set
	Output           string          // Output PCD file, or folder when FolderProcessing is set
	KSearch          int             // Number of nearest neighbors examined around each point; applied only when > 1
	FolderProcessing bool            // Enables processing of all PCD files in the input folder
	Recursive        bool            // Recursive lookup of PCD files in subfolders
	Algorithm        SearchAlgorithm // Neighbor search algorithm to use
}

func (opt *Options) Copy() *Options {
	newOpt := *opt
	return &newOpt
}
