package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/prospector/internal/extract"
)

func TestNormalizeState(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"tx":        "TX",
		"Texas":     "TX",
		"new  york": "NY",
		" ohio ":    "OH",
		"DC":        "DC",
	}
	for in, want := range tests {
		got, ok := extract.NormalizeState(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := extract.NormalizeState("Ontario")
	assert.False(t, ok)
}

func TestIsValidCity(t *testing.T) {
	t.Parallel()

	assert.True(t, extract.IsValidCity("Austin"))
	assert.True(t, extract.IsValidCity("San Luis Obispo"))
	assert.False(t, extract.IsValidCity("Main Street"))
	assert.False(t, extract.IsValidCity("AustinTexas"))
	assert.False(t, extract.IsValidCity("A"))
	assert.False(t, extract.IsValidCity("austin"))
}

func TestExtractLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text      string
		wantCity  string
		wantState string
	}{
		{text: "Acme is headquartered in Austin, Texas and employs 200.", wantCity: "Austin", wantState: "TX"},
		{text: "Offices: Round Rock, TX", wantCity: "Round Rock", wantState: "TX"},
		{text: "based in Springfield, Ontario"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			city, state, ok := extract.ExtractLocation(tt.text)
			assert.Equal(t, tt.wantState != "", ok)
			assert.Equal(t, tt.wantCity, city)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestParseLocation(t *testing.T) {
	t.Parallel()

	city, state, ok := extract.ParseLocation("Austin, Texas, United States")
	assert.True(t, ok)
	assert.Equal(t, "Austin", city)
	assert.Equal(t, "TX", state)

	city, state, ok = extract.ParseLocation("Cleveland, OH")
	assert.True(t, ok)
	assert.Equal(t, "Cleveland", city)
	assert.Equal(t, "OH", state)

	_, _, ok = extract.ParseLocation("Worldwide")
	assert.False(t, ok)
}

func TestExtractAddress(t *testing.T) {
	t.Parallel()

	addr, ok := extract.ExtractAddress("Visit us at 500 Industrial Pkwy, Suite 2 Dayton, OH 45402 today")
	assert.True(t, ok)
	assert.Equal(t, extract.Address{City: "Dayton", State: "OH", ZipCode: "45402"}, addr)

	_, ok = extract.ExtractAddress("Toronto, ON M5V 2T6")
	assert.False(t, ok)
}

func TestParseLocationFilter(t *testing.T) {
	t.Parallel()

	f := extract.ParseLocationFilter("Austin, TX; NYC or Ohio")
	assert.Equal(t, []string{"NY", "OH", "TX"}, f.StateList())
	assert.Equal(t, []string{"austin", "new york"}, f.Cities())
	assert.Equal(t, []extract.Place{{City: "austin", State: "TX"}, {City: "new york", State: "NY"}}, f.Places)
	assert.Contains(t, f.States, "OH")
	assert.NotContains(t, f.States, "TX")

	f = extract.ParseLocationFilter("Portland OR")
	assert.Equal(t, []string{"OR"}, f.StateList())
	assert.Equal(t, []extract.Place{{City: "portland", State: "OR"}}, f.Places)

	f = extract.ParseLocationFilter("Springfield, Dayton")
	assert.Empty(t, f.StateList())
	assert.Equal(t, []extract.Place{{City: "springfield"}, {City: "dayton"}}, f.Places)

	f = extract.ParseLocationFilter("Texas, Ohio, USA")
	assert.Equal(t, []string{"OH", "TX"}, f.StateList())
	assert.Empty(t, f.Places)

	assert.True(t, extract.ParseLocationFilter("  ").IsEmpty())
}

func TestParseLocationFilter_StateCodeBeatsAlias(t *testing.T) {
	t.Parallel()

	f := extract.ParseLocationFilter("LA")
	assert.Equal(t, []string{"LA"}, f.StateList())
	assert.Empty(t, f.Places)

	f = extract.ParseLocationFilter("la")
	assert.Equal(t, []extract.Place{{City: "los angeles", State: "CA"}}, f.Places)

	f = extract.ParseLocationFilter("Baton Rouge, LA")
	assert.Equal(t, []extract.Place{{City: "baton rouge", State: "LA"}}, f.Places)
}

func TestLocationMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter string
		state  string
		city   string
		want   bool
	}{
		{name: "empty filter", filter: "", state: "CA", city: "Fresno", want: true},
		{name: "no company location", filter: "Texas", want: true},
		{name: "state mismatch", filter: "Texas", state: "CA", city: "Los Angeles", want: false},
		{name: "state match", filter: "Texas", state: "TX", want: true},
		{name: "alias by city", filter: "NYC", city: "New York", want: true},
		{name: "alias by state", filter: "NYC", state: "NY", city: "Brooklyn", want: true},
		{name: "alias mismatch", filter: "NYC", state: "NJ", city: "Newark", want: false},
		{name: "city and state filter", filter: "Austin, TX", state: "TX", city: "Dallas", want: true},
		{name: "city only filter match", filter: "Springfield", state: "IL", city: "Springfield", want: true},
		{name: "city only filter mismatch", filter: "Springfield", state: "IL", city: "Chicago", want: false},
		{name: "city only filter no city", filter: "Springfield", state: "IL", want: true},
		{name: "city with state rejects same city in other state", filter: "Springfield, IL", state: "MO", city: "Springfield", want: false},
		{name: "city state pair rejects other state", filter: "Portland, OR", state: "ME", city: "Portland", want: false},
		{name: "alias rejects other state", filter: "NYC", state: "FL", city: "New York Mills", want: false},
		{name: "city with state and unknown company state", filter: "Springfield, IL", city: "Springfield", want: true},
		{name: "city with state and unknown company state mismatch", filter: "Springfield, IL", city: "Peoria", want: false},
		{name: "state code filter matches louisiana", filter: "LA", state: "LA", city: "Shreveport", want: true},
		{name: "state code filter rejects california", filter: "LA", state: "CA", city: "Los Angeles", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := extract.ParseLocationFilter(tt.filter)
			assert.Equal(t, tt.want, extract.LocationMatches(tt.state, tt.city, f))
		})
	}
}
