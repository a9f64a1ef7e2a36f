package jsonlio

import (
	"encoding/json"
	"io"
	"sort"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	iox "github.com/wdm0006/trainkit/pkg/io/ioutils"
)

// WriteAll writes one JSON object per row to path. Null cells are omitted.
// A .gz suffix compresses the output.
func WriteAll(path string, f *ds.Frame) (err error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(out, f)
}

// Write encodes every row of f as a JSON object on its own line.
func Write(out io.Writer, f *ds.Frame) error {
	enc := json.NewEncoder(out)
	for r := 0; r < f.Rows(); r++ {
		if err := enc.Encode(f.Record(r)); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
