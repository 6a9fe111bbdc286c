package assessment

import (
	"encoding/binary"
	"math"
	"strconv"

	domdoc "github.com/hireline/assessrec/internal/domain/document"
)

// buildHashFields converts a domain Document into a flat map[string]string
// for HSET. Flags are stored as "true"/"false" TAG values so the query
// compiler's field=true conditions match them directly.
func buildHashFields(doc *domdoc.Document) map[string]string {
	m := make(map[string]string, 2+len(doc.Tags())+len(doc.Numerics())+len(doc.Flags()))
	m["__content"] = doc.Content()
	m["__vector"] = vectorToBytes(doc.Vector())
	for k, v := range doc.Tags() {
		m[k] = v
	}
	for k, v := range doc.Numerics() {
		m[k] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	for k, v := range doc.Flags() {
		m[k] = strconv.FormatBool(v)
	}
	return m
}

// stringTagKeys are metadata fields that stay tags even when their value
// happens to parse as a number or boolean (an assessment named "360" must
// not become a numeric field).
var stringTagKeys = map[string]bool{
	domdoc.KeyName:           true,
	domdoc.KeyURL:            true,
	domdoc.KeyDescription:    true,
	domdoc.KeySearchKeywords: true,
	domdoc.KeyDurationRange:  true,
}

// SplitHashFields partitions raw hash fields back into content, vector,
// tags, numerics, and flags.
func SplitHashFields(m map[string]string) (
	content string, vector []float32,
	tags map[string]string, numerics map[string]float64, flags map[string]bool,
) {
	tags = make(map[string]string)
	numerics = make(map[string]float64)
	flags = make(map[string]bool)

	for k, v := range m {
		switch {
		case k == "__content":
			content = v
		case k == "__vector":
			vector = bytesToVector(v)
		case stringTagKeys[k]:
			tags[k] = v
		case v == "true":
			flags[k] = true
		case v == "false":
			flags[k] = false
		default:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				numerics[k] = f
			} else {
				tags[k] = v
			}
		}
	}
	return content, vector, tags, numerics, flags
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
