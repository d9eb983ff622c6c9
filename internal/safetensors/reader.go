package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
)

// Decode parses a safetensors payload. Tensors are returned in name
// order. Only F32 tensors are supported.
func Decode(data []byte) ([]Tensor, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("safetensors: file too short (%d bytes)", len(data))
	}

	headerLen := binary.LittleEndian.Uint64(data[:8])
	if headerLen > uint64(len(data)-8) {
		return nil, fmt.Errorf("safetensors: header length %d exceeds file size %d", headerLen, len(data))
	}

	headerEnd := 8 + int(headerLen)

	var header map[string]headerEntry
	if err := json.Unmarshal(data[8:headerEnd], &header); err != nil {
		return nil, fmt.Errorf("safetensors: parse header: %w", err)
	}

	names := make([]string, 0, len(header))

	for name := range header {
		if name == "__metadata__" {
			continue
		}

		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, errors.New("safetensors: no tensors found")
	}

	sort.Strings(names)

	payload := data[headerEnd:]
	out := make([]Tensor, 0, len(names))

	for _, name := range names {
		entry := header[name]
		if entry.DType != dtypeF32 {
			return nil, fmt.Errorf("safetensors: tensor %q has unsupported dtype %q", name, entry.DType)
		}

		elems, err := shapeElementCount(entry.Shape)
		if err != nil {
			return nil, fmt.Errorf("safetensors: tensor %q: %w", name, err)
		}

		start, end := entry.Offsets[0], entry.Offsets[1]
		if start < 0 || end < start || end > len(payload) {
			return nil, fmt.Errorf(
				"safetensors: tensor %q data [%d:%d] exceeds payload size %d",
				name,
				start,
				end,
				len(payload),
			)
		}

		if int64(end-start) != elems*4 {
			return nil, fmt.Errorf(
				"safetensors: tensor %q shape %v expects %d bytes, got %d",
				name,
				entry.Shape,
				elems*4,
				end-start,
			)
		}

		raw := payload[start:end]

		values := make([]float32, elems)
		for i := range values {
			values[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}

		out = append(out, Tensor{
			Name:  name,
			Shape: append([]int64(nil), entry.Shape...),
			Data:  values,
		})
	}

	return out, nil
}

// ReadFile reads and decodes a safetensors file.
func ReadFile(path string) ([]Tensor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("safetensors: read %s: %w", path, err)
	}

	return Decode(data)
}
