package pkg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

var regionNames = map[string]string{
	"korea":     "한국",
	"seoul":     "서울",
	"busan":     "부산",
	"daegu":     "대구",
	"incheon":   "인천",
	"gwangju":   "광주",
	"daejeon":   "대전",
	"ulsan":     "울산",
	"sejong":    "세종",
	"gyeonggi":  "경기",
	"chungbuk":  "충북",
	"gyeongbuk": "경북",
	"gyeongnam": "경남",
	"jeju":      "제주",
}

// payloadFields returns a complete response body as a mutable map.
func payloadFields() map[string]interface{} {
	fields := map[string]interface{}{
		"korea": map[string]interface{}{"countryName": "한국", "totalCase": "1000", "newCase": "50"},
		"seoul": map[string]interface{}{"countryName": "서울", "totalCase": "300", "newCase": "10"},
	}
	for i, key := range RegionKeys() {
		if _, ok := fields[key]; ok {
			continue
		}
		fields[key] = map[string]interface{}{
			"countryName": regionNames[key],
			"totalCase":   "1,0" + string(rune('0'+i%10)) + "0",
			"newCase":     string(rune('0' + i%10)),
		}
	}
	return fields
}

func marshalPayload(t *testing.T, fields map[string]interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	return data
}

func samplePayload(t *testing.T) []byte {
	t.Helper()
	return marshalPayload(t, payloadFields())
}
