package mandi

// Static lookup data for mock synthesis. Declaration order matters: mock
// records are generated state -> district -> market -> commodity in the
// order below, then truncated, so reordering entries changes which records
// survive the cut.

type districtEntry struct {
	Name    string
	Markets []string
}

type stateEntry struct {
	Name      string
	Districts []districtEntry
}

var marketDirectory = []stateEntry{
	{
		Name: "Haryana",
		Districts: []districtEntry{
			{Name: "Hisar", Markets: []string{"Hisar Mandi", "Adampur Mandi", "Hansi Mandi"}},
			{Name: "Karnal", Markets: []string{"Karnal Mandi", "Gharaunda Mandi"}},
			{Name: "Sirsa", Markets: []string{"Sirsa Mandi", "Ellenabad Mandi"}},
		},
	},
	{
		Name: "Punjab",
		Districts: []districtEntry{
			{Name: "Ludhiana", Markets: []string{"Ludhiana Mandi", "Khanna Mandi"}},
			{Name: "Amritsar", Markets: []string{"Amritsar Mandi", "Rayya Mandi"}},
			{Name: "Bathinda", Markets: []string{"Bathinda Mandi", "Rampura Phul Mandi"}},
		},
	},
	{
		Name: "Uttar Pradesh",
		Districts: []districtEntry{
			{Name: "Lucknow", Markets: []string{"Lucknow Mandi", "Malihabad Mandi"}},
			{Name: "Kanpur", Markets: []string{"Kanpur Mandi", "Bilhaur Mandi"}},
			{Name: "Agra", Markets: []string{"Agra Mandi", "Fatehpur Sikri Mandi"}},
		},
	},
	{
		Name: "Madhya Pradesh",
		Districts: []districtEntry{
			{Name: "Indore", Markets: []string{"Indore Mandi", "Sanwer Mandi"}},
			{Name: "Bhopal", Markets: []string{"Bhopal Mandi", "Berasia Mandi"}},
			{Name: "Ujjain", Markets: []string{"Ujjain Mandi", "Nagda Mandi"}},
		},
	},
	{
		Name: "Maharashtra",
		Districts: []districtEntry{
			{Name: "Pune", Markets: []string{"Pune Market Yard", "Baramati Mandi"}},
			{Name: "Nashik", Markets: []string{"Nashik Mandi", "Lasalgaon Mandi"}},
			{Name: "Nagpur", Markets: []string{"Nagpur Mandi", "Kamptee Mandi"}},
		},
	},
	{
		Name: "Rajasthan",
		Districts: []districtEntry{
			{Name: "Jaipur", Markets: []string{"Jaipur Mandi", "Chomu Mandi"}},
			{Name: "Kota", Markets: []string{"Kota Mandi", "Ramganj Mandi"}},
			{Name: "Sri Ganganagar", Markets: []string{"Ganganagar Mandi", "Padampur Mandi"}},
		},
	},
	{
		Name: "Gujarat",
		Districts: []districtEntry{
			{Name: "Rajkot", Markets: []string{"Rajkot Mandi", "Gondal Mandi"}},
			{Name: "Ahmedabad", Markets: []string{"Ahmedabad Mandi", "Dholka Mandi"}},
			{Name: "Junagadh", Markets: []string{"Junagadh Mandi", "Keshod Mandi"}},
		},
	},
	{
		Name: "Karnataka",
		Districts: []districtEntry{
			{Name: "Bengaluru", Markets: []string{"Yeshwanthpur Mandi", "KR Market"}},
			{Name: "Hubballi", Markets: []string{"Hubballi Mandi", "Dharwad Mandi"}},
			{Name: "Mysuru", Markets: []string{"Mysuru Mandi", "Nanjangud Mandi"}},
		},
	},
}

type priceRange struct {
	Low  int
	High int
}

type commodityEntry struct {
	Name string
	Min  priceRange
	Max  priceRange
}

var commodityDirectory = []commodityEntry{
	{Name: "Wheat", Min: priceRange{2000, 2300}, Max: priceRange{2200, 2500}},
	{Name: "Paddy", Min: priceRange{1900, 2200}, Max: priceRange{2100, 2400}},
	{Name: "Cotton", Min: priceRange{5800, 6500}, Max: priceRange{6400, 7200}},
	{Name: "Mustard", Min: priceRange{4800, 5400}, Max: priceRange{5300, 5900}},
	{Name: "Maize", Min: priceRange{1700, 2000}, Max: priceRange{1900, 2200}},
	{Name: "Bajra", Min: priceRange{2100, 2400}, Max: priceRange{2300, 2600}},
	{Name: "Gram", Min: priceRange{4500, 5100}, Max: priceRange{5000, 5600}},
	{Name: "Soybean", Min: priceRange{4200, 4800}, Max: priceRange{4700, 5300}},
	{Name: "Groundnut", Min: priceRange{5500, 6200}, Max: priceRange{6100, 6800}},
	{Name: "Sugarcane", Min: priceRange{280, 340}, Max: priceRange{330, 390}},
	{Name: "Onion", Min: priceRange{1200, 1800}, Max: priceRange{1700, 2400}},
	{Name: "Potato", Min: priceRange{900, 1300}, Max: priceRange{1200, 1700}},
	{Name: "Tomato", Min: priceRange{800, 1500}, Max: priceRange{1400, 2200}},
	{Name: "Turmeric", Min: priceRange{6500, 7500}, Max: priceRange{7400, 8500}},
	{Name: "Chilli", Min: priceRange{9000, 11000}, Max: priceRange{10800, 13000}},
}

// States returns state names in declaration order.
func States() []string {
	names := make([]string, 0, len(marketDirectory))
	for _, s := range marketDirectory {
		names = append(names, s.Name)
	}
	return names
}

// DistrictsForState returns the districts under a state, nil if unknown.
// District options on the client cascade from this lookup.
func DistrictsForState(state string) []string {
	for _, s := range marketDirectory {
		if s.Name != state {
			continue
		}
		names := make([]string, 0, len(s.Districts))
		for _, d := range s.Districts {
			names = append(names, d.Name)
		}
		return names
	}
	return nil
}

// Commodities returns commodity names in declaration order.
func Commodities() []string {
	names := make([]string, 0, len(commodityDirectory))
	for _, c := range commodityDirectory {
		names = append(names, c.Name)
	}
	return names
}
