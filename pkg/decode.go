package pkg

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errMissingField = errors.New("required field is missing")

type rawOverview struct {
	CountryName *string `json:"countryName"`
	TotalCase   *string `json:"totalCase"`
	NewCase     *string `json:"newCase"`
}

// Decode parses an API payload. Every region and every overview field is
// required; nothing is defaulted.
func Decode(data []byte) (*CityCovidOverview, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &DecodeError{Err: err}
	}

	var overview CityCovidOverview
	for _, r := range allRegions() {
		raw, ok := fields[r.key]
		if !ok || isNull(raw) {
			return nil, &DecodeError{Field: r.key, Err: errMissingField}
		}
		decoded, err := decodeOverview(r.key, raw)
		if err != nil {
			return nil, err
		}
		*r.field(&overview) = decoded
	}
	return &overview, nil
}

func decodeOverview(key string, raw json.RawMessage) (CovidOverview, error) {
	var ro rawOverview
	if err := json.Unmarshal(raw, &ro); err != nil {
		return CovidOverview{}, &DecodeError{Field: key, Err: err}
	}
	switch {
	case ro.CountryName == nil:
		return CovidOverview{}, &DecodeError{Field: key + ".countryName", Err: errMissingField}
	case ro.TotalCase == nil:
		return CovidOverview{}, &DecodeError{Field: key + ".totalCase", Err: errMissingField}
	case ro.NewCase == nil:
		return CovidOverview{}, &DecodeError{Field: key + ".newCase", Err: errMissingField}
	}
	return CovidOverview{
		CountryName: *ro.CountryName,
		TotalCase:   *ro.TotalCase,
		NewCase:     *ro.NewCase,
	}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
