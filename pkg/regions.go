package pkg

// region binds an API key to its field in CityCovidOverview. Decode and
// Project both walk regionTable, so the decoded set and the chart order
// always agree.
type region struct {
	key   string
	field func(*CityCovidOverview) *CovidOverview
}

const nationalKey = "korea"

var nationalRegion = region{nationalKey, func(c *CityCovidOverview) *CovidOverview { return &c.Korea }}

// regionTable is in chart order. Slice colors and positions are assigned
// positionally downstream, so do not reorder.
var regionTable = []region{
	{"seoul", func(c *CityCovidOverview) *CovidOverview { return &c.Seoul }},
	{"busan", func(c *CityCovidOverview) *CovidOverview { return &c.Busan }},
	{"daegu", func(c *CityCovidOverview) *CovidOverview { return &c.Daegu }},
	{"incheon", func(c *CityCovidOverview) *CovidOverview { return &c.Incheon }},
	{"gwangju", func(c *CityCovidOverview) *CovidOverview { return &c.Gwangju }},
	{"daejeon", func(c *CityCovidOverview) *CovidOverview { return &c.Daejeon }},
	{"ulsan", func(c *CityCovidOverview) *CovidOverview { return &c.Ulsan }},
	{"sejong", func(c *CityCovidOverview) *CovidOverview { return &c.Sejong }},
	{"gyeonggi", func(c *CityCovidOverview) *CovidOverview { return &c.Gyeonggi }},
	{"chungbuk", func(c *CityCovidOverview) *CovidOverview { return &c.Chungbuk }},
	{"gyeongbuk", func(c *CityCovidOverview) *CovidOverview { return &c.Gyeongbuk }},
	{"gyeongnam", func(c *CityCovidOverview) *CovidOverview { return &c.Gyeongnam }},
	{"jeju", func(c *CityCovidOverview) *CovidOverview { return &c.Jeju }},
}

func RegionKeys() []string {
	keys := make([]string, 0, len(regionTable))
	for _, r := range regionTable {
		keys = append(keys, r.key)
	}
	return keys
}

// allRegions is the national region followed by regionTable.
func allRegions() []region {
	return append([]region{nationalRegion}, regionTable...)
}
