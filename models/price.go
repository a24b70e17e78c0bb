package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price is an amount the API sends either as a number, a numeric string or an
// object carrying a "montant" field. A string that is not a number ("N/A")
// decodes as 0, an unknown price.
type Price float64

func (p Price) Float64() float64 { return float64(p) }

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return p.parseString(s)
	case '{':
		var obj struct {
			Montant json.RawMessage `json:"montant"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if len(obj.Montant) == 0 {
			*p = 0
			return nil
		}
		return p.UnmarshalJSON(obj.Montant)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("invalid price %s: %w", string(data), err)
		}
		*p = Price(f)
		return nil
	}
}

func (p *Price) parseString(s string) error {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = Price(f)
	return nil
}
