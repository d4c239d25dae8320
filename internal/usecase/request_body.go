package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"OptScreen/internal/domain/models"
)

// BuildRequestBody serializes a validated preset as a JSON object, keeping
// the preset's key order. Numeric and boolean filters become JSON numbers
// and booleans, limit becomes an integer and everything else stays a string.
func BuildRequestBody(p *models.Preset) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := marshalValue(f)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(f models.PresetField) ([]byte, error) {
	switch {
	case IsNumericField(f.Key):
		n, ok := parseFloat(f.Value)
		if !ok {
			return nil, fmt.Errorf("not a float: %q", f.Value)
		}
		return json.Marshal(n)
	case IsBoolField(f.Key):
		b, err := strconv.ParseBool(f.Value)
		if err != nil {
			return nil, err
		}
		return json.Marshal(b)
	case f.Key == fieldLimit:
		n, err := strconv.Atoi(f.Value)
		if err != nil {
			return nil, err
		}
		return json.Marshal(n)
	case f.Key == fieldTickers:
		return json.Marshal(strings.Join(SplitTickers(f.Value), ","))
	default:
		return json.Marshal(f.Value)
	}
}
