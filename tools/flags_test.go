package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlagsForCommandEstimate(t *testing.T) {
	flags := ParseFlagsForCommandEstimate([]string{
		"input.pcd", "output.pcd", "-k", "25", "-silent", "-search", "linear",
	})
	assert.Equal(t, 25, flags.KSearch)
	assert.Equal(t, "linear", flags.Search)
	assert.True(t, flags.Silent)
	assert.False(t, flags.Folder)
	assert.False(t, flags.Recursive)
	assert.False(t, flags.LogTimestamp)
	assert.False(t, flags.Help)
}

func TestParseFlagsForCommandEstimateDefaults(t *testing.T) {
	flags := ParseFlagsForCommandEstimate([]string{"input.pcd", "output.pcd"})
	assert.Equal(t, 0, flags.KSearch)
	assert.Equal(t, "kdtree", flags.Search)
	assert.False(t, flags.Silent)
}

func TestHasArgument(t *testing.T) {
	args := []string{"in.pcd", "-folder", "out"}
	assert.True(t, HasArgument(args, "-folder"))
	assert.False(t, HasArgument(args, "-recursive"))
}

func TestParseArgumentInt(t *testing.T) {
	assert.Equal(t, 19, ParseArgumentInt([]string{"-k", "19"}, "-k", 0))
	assert.Equal(t, 7, ParseArgumentInt([]string{"a.pcd"}, "-k", 7))
	// malformed and trailing values fall back to the default
	assert.Equal(t, 7, ParseArgumentInt([]string{"-k", "many"}, "-k", 7))
	assert.Equal(t, 7, ParseArgumentInt([]string{"a.pcd", "-k"}, "-k", 7))
}

func TestParseArgumentString(t *testing.T) {
	assert.Equal(t, "linear", ParseArgumentString([]string{"-search", "linear"}, "-search", "kdtree"))
	assert.Equal(t, "kdtree", ParseArgumentString([]string{"in.pcd"}, "-search", "kdtree"))
	assert.Equal(t, "kdtree", ParseArgumentString([]string{"-search"}, "-search", "kdtree"))
}

func TestParseFileExtensionArgument(t *testing.T) {
	args := []string{"-k", "19", "cloud.pcd", "result.PCD", "notes.txt"}
	assert.Equal(t, []string{"cloud.pcd", "result.PCD"}, ParseFileExtensionArgument(args, ".pcd"))
	assert.Empty(t, ParseFileExtensionArgument([]string{"-folder"}, ".pcd"))
}

func TestParseBareArguments(t *testing.T) {
	args := []string{"-k", "19", "inputs", "-silent", "outputs", "-search", "linear"}
	assert.Equal(t, []string{"inputs", "outputs"}, ParseBareArguments(args))

	// a boolean option does not swallow the argument after it
	assert.Equal(t, []string{"inputs"}, ParseBareArguments([]string{"-folder", "inputs"}))
}
