package pcd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/turecekt/scurv/internal/data"
)

// ErrNormalsMissing reports a cloud persisted without normal fields. The
// descriptor pipeline requires normals as an input and never estimates
// them itself.
var ErrNormalsMissing = errors.New("input dataset does not contain normal information")

type field struct {
	name  string
	size  int
	typ   string
	count int
}

type header struct {
	fields []field
	width  int
	height int
	points int
	format string
}

func (h *header) fieldIndex(name string) int {
	for i, f := range h.fields {
		if f.name == name {
			return i
		}
	}
	return -1
}

// columnOf returns the flat value column of the named field, counting
// each multi-count field as that many columns.
func (h *header) columnOf(name string) int {
	column := 0
	for _, f := range h.fields {
		if f.name == name {
			return column
		}
		column += f.count
	}
	return -1
}

// byteOffsetOf returns the byte offset of the named field within one
// binary point record.
func (h *header) byteOffsetOf(name string) int {
	offset := 0
	for _, f := range h.fields {
		if f.name == name {
			return offset
		}
		offset += f.size * f.count
	}
	return -1
}

func (h *header) stride() int {
	stride := 0
	for _, f := range h.fields {
		stride += f.size * f.count
	}
	return stride
}

// LoadPointNormalCloud reads a PCD file carrying x, y, z and
// normal_x, normal_y, normal_z fields and returns the positions and
// normals as index aligned clouds. Clouds without normal fields are
// rejected before any point data is read.
func LoadPointNormalCloud(path string) (*data.PointCloud, *data.NormalCloud, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	hdr, err := readHeader(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, name := range []string{"x", "y", "z"} {
		if hdr.fieldIndex(name) < 0 {
			return nil, nil, fmt.Errorf("%s: missing coordinate field %q", path, name)
		}
	}
	for _, name := range []string{"normal_x", "normal_y", "normal_z"} {
		if hdr.fieldIndex(name) < 0 {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrNormalsMissing)
		}
	}

	switch hdr.format {
	case "ascii":
		return readASCII(reader, hdr)
	case "binary":
		return readBinary(reader, hdr)
	default:
		return nil, nil, fmt.Errorf("%s: unsupported DATA format %q", path, hdr.format)
	}
}

func readHeader(reader *bufio.Reader) (*header, error) {
	hdr := &header{width: -1, height: -1, points: -1}
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("truncated PCD header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		key, values := parts[0], parts[1:]
		switch key {
		case "VERSION", "VIEWPOINT":
			// ignored
		case "FIELDS":
			hdr.fields = make([]field, len(values))
			for i, name := range values {
				// defaults for headers that omit SIZE/TYPE/COUNT lines
				hdr.fields[i] = field{name: name, size: 4, typ: "F", count: 1}
			}
		case "SIZE", "TYPE", "COUNT":
			if len(values) != len(hdr.fields) {
				return nil, fmt.Errorf("%s entries do not match FIELDS", key)
			}
			for i, v := range values {
				switch key {
				case "SIZE":
					size, err := strconv.Atoi(v)
					if err != nil {
						return nil, fmt.Errorf("bad SIZE entry %q", v)
					}
					hdr.fields[i].size = size
				case "TYPE":
					hdr.fields[i].typ = v
				case "COUNT":
					count, err := strconv.Atoi(v)
					if err != nil {
						return nil, fmt.Errorf("bad COUNT entry %q", v)
					}
					hdr.fields[i].count = count
				}
			}
		case "WIDTH", "HEIGHT", "POINTS":
			if len(values) != 1 {
				return nil, fmt.Errorf("bad %s line", key)
			}
			n, err := strconv.Atoi(values[0])
			if err != nil {
				return nil, fmt.Errorf("bad %s entry %q", key, values[0])
			}
			switch key {
			case "WIDTH":
				hdr.width = n
			case "HEIGHT":
				hdr.height = n
			case "POINTS":
				hdr.points = n
			}
		case "DATA":
			if len(values) != 1 {
				return nil, errors.New("bad DATA line")
			}
			hdr.format = strings.ToLower(values[0])
			if hdr.points < 0 {
				if hdr.width < 0 || hdr.height < 0 {
					return nil, errors.New("header does not declare a point count")
				}
				hdr.points = hdr.width * hdr.height
			}
			if len(hdr.fields) == 0 {
				return nil, errors.New("header does not declare any fields")
			}
			return hdr, nil
		default:
			return nil, fmt.Errorf("unrecognized header entry %q", key)
		}
	}
}

func readASCII(reader *bufio.Reader, hdr *header) (*data.PointCloud, *data.NormalCloud, error) {
	columns := make([]int, 6)
	for i, name := range []string{"x", "y", "z", "normal_x", "normal_y", "normal_z"} {
		columns[i] = hdr.columnOf(name)
	}

	cloud := &data.PointCloud{Points: make([]data.Point, 0, hdr.points)}
	normals := &data.NormalCloud{Normals: make([]data.Normal, 0, hdr.points)}
	for len(cloud.Points) < hdr.points {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, nil, err
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			values := strings.Fields(trimmed)
			record := make([]float64, 6)
			for i, column := range columns {
				if column >= len(values) {
					return nil, nil, fmt.Errorf("point %d: truncated record", len(cloud.Points))
				}
				v, parseErr := strconv.ParseFloat(values[column], 64)
				if parseErr != nil {
					return nil, nil, fmt.Errorf("point %d: %v", len(cloud.Points), parseErr)
				}
				record[i] = v
			}
			cloud.Append(data.NewPoint(record[0], record[1], record[2]))
			normals.Append(data.NewNormal(record[3], record[4], record[5]))
		}
		if err == io.EOF {
			break
		}
	}
	if cloud.Len() != hdr.points {
		return nil, nil, fmt.Errorf("expected %d points, found %d", hdr.points, cloud.Len())
	}
	return cloud, normals, nil
}

func readBinary(reader *bufio.Reader, hdr *header) (*data.PointCloud, *data.NormalCloud, error) {
	names := []string{"x", "y", "z", "normal_x", "normal_y", "normal_z"}
	offsets := make([]int, 6)
	sizes := make([]int, 6)
	for i, name := range names {
		f := hdr.fields[hdr.fieldIndex(name)]
		if f.typ != "F" || (f.size != 4 && f.size != 8) {
			return nil, nil, fmt.Errorf("field %q: unsupported binary layout %s%d", name, f.typ, f.size)
		}
		offsets[i] = hdr.byteOffsetOf(name)
		sizes[i] = f.size
	}

	stride := hdr.stride()
	buffer := make([]byte, stride)
	cloud := &data.PointCloud{Points: make([]data.Point, 0, hdr.points)}
	normals := &data.NormalCloud{Normals: make([]data.Normal, 0, hdr.points)}
	for p := 0; p < hdr.points; p++ {
		if _, err := io.ReadFull(reader, buffer); err != nil {
			return nil, nil, fmt.Errorf("point %d: %v", p, err)
		}
		record := make([]float64, 6)
		for i := range names {
			raw := buffer[offsets[i]:]
			if sizes[i] == 4 {
				record[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw)))
			} else {
				record[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw))
			}
		}
		cloud.Append(data.NewPoint(record[0], record[1], record[2]))
		normals.Append(data.NewNormal(record[3], record[4], record[5]))
	}
	return cloud, normals, nil
}
