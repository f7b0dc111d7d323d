package pcd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/turecekt/scurv/internal/data"
	"github.com/turecekt/scurv/internal/scurv"
)

// SaveSignatureCloud persists the computed signatures as an ASCII PCD
// file, one record per estimated object. Values are written in their
// shortest exact decimal form so the file round-trips textually, and the
// header carries a provenance comment with a unique run id.
func SaveSignatureCloud(path string, signatures *scurv.SignatureCloud) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintln(writer, "# .PCD v0.7 - Point Cloud Data file format")
	fmt.Fprintf(writer, "# generated by scurv-estimation, run %s\n", uuid.NewString())
	fmt.Fprintln(writer, "VERSION 0.7")
	fmt.Fprintln(writer, "FIELDS scurv")
	fmt.Fprintln(writer, "SIZE 4")
	fmt.Fprintln(writer, "TYPE F")
	fmt.Fprintf(writer, "COUNT %d\n", scurv.SignatureSize)
	fmt.Fprintf(writer, "WIDTH %d\n", signatures.Len())
	fmt.Fprintln(writer, "HEIGHT 1")
	fmt.Fprintln(writer, "VIEWPOINT 0 0 0 1 0 0 0")
	fmt.Fprintf(writer, "POINTS %d\n", signatures.Len())
	fmt.Fprintln(writer, "DATA ascii")

	values := make([]string, scurv.SignatureSize)
	for _, signature := range signatures.Signatures {
		for i, v := range signature.Histogram {
			values[i] = decimal.NewFromFloat(v).String()
		}
		fmt.Fprintln(writer, strings.Join(values, " "))
	}
	return writer.Flush()
}

// SavePointNormalCloud persists a cloud with its normals as an ASCII PCD
// file readable by LoadPointNormalCloud.
func SavePointNormalCloud(path string, cloud *data.PointCloud, normals *data.NormalCloud) error {
	if cloud.Len() != normals.Len() {
		return fmt.Errorf("%d points but %d normals", cloud.Len(), normals.Len())
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintln(writer, "# .PCD v0.7 - Point Cloud Data file format")
	fmt.Fprintln(writer, "VERSION 0.7")
	fmt.Fprintln(writer, "FIELDS x y z normal_x normal_y normal_z")
	fmt.Fprintln(writer, "SIZE 4 4 4 4 4 4")
	fmt.Fprintln(writer, "TYPE F F F F F F")
	fmt.Fprintln(writer, "COUNT 1 1 1 1 1 1")
	fmt.Fprintf(writer, "WIDTH %d\n", cloud.Len())
	fmt.Fprintln(writer, "HEIGHT 1")
	fmt.Fprintln(writer, "VIEWPOINT 0 0 0 1 0 0 0")
	fmt.Fprintf(writer, "POINTS %d\n", cloud.Len())
	fmt.Fprintln(writer, "DATA ascii")

	for i, p := range cloud.Points {
		n := normals.Normals[i]
		record := []string{
			formatCoordinate(p.X), formatCoordinate(p.Y), formatCoordinate(p.Z),
			formatCoordinate(n.X), formatCoordinate(n.Y), formatCoordinate(n.Z),
		}
		fmt.Fprintln(writer, strings.Join(record, " "))
	}
	return writer.Flush()
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
