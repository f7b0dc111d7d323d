package pcd

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turecekt/scurv/internal/data"
	"github.com/turecekt/scurv/internal/scurv"
)

const asciiPointNormalHeader = `# .PCD v0.7 - Point Cloud Data file format
VERSION 0.7
FIELDS x y z normal_x normal_y normal_z
SIZE 4 4 4 4 4 4
TYPE F F F F F F
COUNT 1 1 1 1 1 1
WIDTH 3
HEIGHT 1
VIEWPOINT 0 0 0 1 0 0 0
POINTS 3
DATA ascii
`

func writeTempPcd(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cloud.pcd")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPointNormalCloudAscii(t *testing.T) {
	content := asciiPointNormalHeader +
		"1 2 3 0 0 1\n" +
		"-4.5 0.25 6 0 1 0\n" +
		"7 8.125 -9 1 0 0\n"
	cloud, normals, err := LoadPointNormalCloud(writeTempPcd(t, content))
	require.NoError(t, err)

	require.Equal(t, 3, cloud.Len())
	require.Equal(t, 3, normals.Len())
	assert.Equal(t, data.NewPoint(1, 2, 3), cloud.Points[0])
	assert.Equal(t, data.NewPoint(-4.5, 0.25, 6), cloud.Points[1])
	assert.Equal(t, data.NewPoint(7, 8.125, -9), cloud.Points[2])
	assert.Equal(t, data.NewNormal(0, 0, 1), normals.Normals[0])
	assert.Equal(t, data.NewNormal(0, 1, 0), normals.Normals[1])
	assert.Equal(t, data.NewNormal(1, 0, 0), normals.Normals[2])
}

func TestLoadPointNormalCloudReorderedFields(t *testing.T) {
	content := `VERSION 0.7
FIELDS normal_x normal_y normal_z x y z
SIZE 4 4 4 4 4 4
TYPE F F F F F F
COUNT 1 1 1 1 1 1
WIDTH 1
HEIGHT 1
VIEWPOINT 0 0 0 1 0 0 0
POINTS 1
DATA ascii
0 0 1 5 6 7
`
	cloud, normals, err := LoadPointNormalCloud(writeTempPcd(t, content))
	require.NoError(t, err)
	assert.Equal(t, data.NewPoint(5, 6, 7), cloud.Points[0])
	assert.Equal(t, data.NewNormal(0, 0, 1), normals.Normals[0])
}

func TestLoadPointNormalCloudWithoutNormals(t *testing.T) {
	content := `VERSION 0.7
FIELDS x y z
SIZE 4 4 4
TYPE F F F
COUNT 1 1 1
WIDTH 1
HEIGHT 1
VIEWPOINT 0 0 0 1 0 0 0
POINTS 1
DATA ascii
1 2 3
`
	_, _, err := LoadPointNormalCloud(writeTempPcd(t, content))
	require.ErrorIs(t, err, ErrNormalsMissing)
}

func TestLoadPointNormalCloudRejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name: "missing coordinate field",
			content: `VERSION 0.7
FIELDS x y normal_x normal_y normal_z
SIZE 4 4 4 4 4
TYPE F F F F F
COUNT 1 1 1 1 1
WIDTH 1
HEIGHT 1
POINTS 1
DATA ascii
1 2 0 0 1
`,
		},
		{
			name: "unsupported data format",
			content: strings.Replace(asciiPointNormalHeader, "DATA ascii", "DATA binary_compressed", 1) +
				"1 2 3 0 0 1\n",
		},
		{
			name:    "truncated data section",
			content: asciiPointNormalHeader + "1 2 3 0 0 1\n",
		},
		{
			name: "mismatched size entries",
			content: `VERSION 0.7
FIELDS x y z normal_x normal_y normal_z
SIZE 4 4 4
TYPE F F F F F F
COUNT 1 1 1 1 1 1
POINTS 1
DATA ascii
1 2 3 0 0 1
`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := LoadPointNormalCloud(writeTempPcd(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadPointNormalCloudBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.pcd")
	file, err := os.Create(path)
	require.NoError(t, err)

	writer := bufio.NewWriter(file)
	header := `VERSION 0.7
FIELDS x y z normal_x normal_y normal_z
SIZE 4 4 4 8 8 8
TYPE F F F F F F
COUNT 1 1 1 1 1 1
WIDTH 2
HEIGHT 1
VIEWPOINT 0 0 0 1 0 0 0
POINTS 2
DATA binary
`
	_, err = writer.WriteString(header)
	require.NoError(t, err)

	records := []struct {
		point  [3]float32
		normal [3]float64
	}{
		{point: [3]float32{1.5, -2, 0.25}, normal: [3]float64{0, 0, 1}},
		{point: [3]float32{3, 4, 5}, normal: [3]float64{0.6, 0.8, 0}},
	}
	for _, r := range records {
		for _, v := range r.point {
			require.NoError(t, binary.Write(writer, binary.LittleEndian, v))
		}
		for _, v := range r.normal {
			require.NoError(t, binary.Write(writer, binary.LittleEndian, v))
		}
	}
	require.NoError(t, writer.Flush())
	require.NoError(t, file.Close())

	cloud, normals, err := LoadPointNormalCloud(path)
	require.NoError(t, err)
	require.Equal(t, 2, cloud.Len())
	assert.Equal(t, data.NewPoint(1.5, -2, 0.25), cloud.Points[0])
	assert.Equal(t, data.NewNormal(0.6, 0.8, 0), normals.Normals[1])
}

func TestSavePointNormalCloudRoundTrip(t *testing.T) {
	cloud := &data.PointCloud{}
	normals := &data.NormalCloud{}
	cloud.Append(data.NewPoint(0.125, -3, 42))
	cloud.Append(data.NewPoint(1e-6, 2.5, -0.75))
	normals.Append(data.NewNormal(0, 0, 1))
	normals.Append(data.NewNormal(0.6, 0.8, 0))

	path := filepath.Join(t.TempDir(), "roundtrip.pcd")
	require.NoError(t, SavePointNormalCloud(path, cloud, normals))

	loadedCloud, loadedNormals, err := LoadPointNormalCloud(path)
	require.NoError(t, err)
	assert.Equal(t, cloud.Points, loadedCloud.Points)
	assert.Equal(t, normals.Normals, loadedNormals.Normals)
}

func TestSavePointNormalCloudMisaligned(t *testing.T) {
	cloud := &data.PointCloud{}
	cloud.Append(data.NewPoint(1, 2, 3))
	err := SavePointNormalCloud(filepath.Join(t.TempDir(), "bad.pcd"), cloud, &data.NormalCloud{})
	assert.Error(t, err)
}

func TestSaveSignatureCloud(t *testing.T) {
	signatures := &scurv.SignatureCloud{}
	var signature scurv.SCurVSignature210
	for i := range signature.Histogram {
		signature.Histogram[i] = float64(i) / 1000
	}
	signatures.Append(signature)

	path := filepath.Join(t.TempDir(), "signature.pcd")
	require.NoError(t, SaveSignatureCloud(path, signatures))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")

	assert.Contains(t, lines, "FIELDS scurv")
	assert.Contains(t, lines, "COUNT 210")
	assert.Contains(t, lines, "WIDTH 1")
	assert.Contains(t, lines, "POINTS 1")
	assert.Contains(t, lines, "DATA ascii")

	dataLine := lines[len(lines)-1]
	values := strings.Fields(dataLine)
	require.Len(t, values, scurv.SignatureSize)
	for i, v := range values {
		parsed, err := strconv.ParseFloat(v, 64)
		require.NoError(t, err)
		assert.InDelta(t, signature.Histogram[i], parsed, 1e-12, "value %d", i)
	}
}

func TestSaveSignatureCloudWritesExactDecimals(t *testing.T) {
	signatures := &scurv.SignatureCloud{}
	var signature scurv.SCurVSignature210
	signature.Histogram[0] = 0.1
	signature.Histogram[1] = 0.75
	signatures.Append(signature)

	path := filepath.Join(t.TempDir(), "decimals.pcd")
	require.NoError(t, SaveSignatureCloud(path, signatures))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	values := strings.Fields(lines[len(lines)-1])
	assert.Equal(t, "0.1", values[0])
	assert.Equal(t, "0.75", values[1])
	assert.Equal(t, "0", values[2])
}
