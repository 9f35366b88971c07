package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pottery-map/internal/common"
)

const companiesTOML = `
["Alfred Meakin"]
factory = "Royal Albert Works"
location = { latitude = 53.0283, longitude = -2.1717 }
successor = "Myott-Meakin"
area = "Tunstall"
defunct = true

["Myott-Meakin"]
successor = "Churchill"

[Churchill]
factory = "Crown Works"

[Spode.location]
latitude = 52.9996
longitude = -2.1842
`

func TestParseCompanies_TOML(t *testing.T) {
	companies, diags, err := ParseCompanies([]byte(companiesTOML), FormatTOML)
	require.NoError(t, err)
	require.NotNil(t, diags)
	assert.Zero(t, diags.Len())

	assert.Equal(t, []string{"Alfred Meakin", "Myott-Meakin", "Churchill", "Spode"}, common.Keys(companies))

	meakin, ok := companies.Get("Alfred Meakin")
	require.True(t, ok)
	assert.Equal(t, "Alfred Meakin", meakin.Name)
	assert.Equal(t, "Royal Albert Works", meakin.Factory)
	require.NotNil(t, meakin.Location)
	assert.InDelta(t, 53.0283, meakin.Location.Latitude, 1e-9)
	assert.InDelta(t, -2.1717, meakin.Location.Longitude, 1e-9)
	assert.Equal(t, "Myott-Meakin", meakin.Successor)
	assert.Equal(t, "Tunstall", meakin.Area)
	assert.True(t, meakin.Defunct)

	myott, _ := companies.Get("Myott-Meakin")
	assert.Equal(t, DefaultFactory, myott.Factory)
	assert.Nil(t, myott.Location)
	assert.True(t, myott.HasSuccessor())

	spode, _ := companies.Get("Spode")
	require.NotNil(t, spode.Location)
	assert.False(t, spode.HasSuccessor())
}

func TestParseCompanies_YAML(t *testing.T) {
	yaml := `
Alfred Meakin:
  factory: Royal Albert Works
  location:
    latitude: 53.0283
    longitude: -2.1717
  successor: Myott-Meakin
Myott-Meakin: {}
J&G Meakin:
Churchill:
  factory: Crown Works
`

	companies, diags, err := ParseCompanies([]byte(yaml), FormatYAML)
	require.NoError(t, err)
	assert.Zero(t, diags.Len())

	assert.Equal(t, []string{"Alfred Meakin", "Myott-Meakin", "J&G Meakin", "Churchill"}, common.Keys(companies))

	for pair := companies.Oldest(); pair != nil; pair = pair.Next() {
		assert.NotEmpty(t, pair.Value.Factory, pair.Key)
	}

	jg, _ := companies.Get("J&G Meakin")
	assert.Equal(t, NewCompany("J&G Meakin"), jg)
}

func TestParseCompanies_DuplicateLocation(t *testing.T) {
	data := `
[A]
location = { latitude = 53.0, longitude = -2.0 }

[B]
location = { latitude = 53.0, longitude = -2.0 }

[C]
location = { latitude = 53.5, longitude = -2.0 }
`

	companies, diags, err := ParseCompanies([]byte(data), FormatTOML)
	require.NoError(t, err)

	dups := diags.WithCode("duplicate_location")
	require.Len(t, dups, 1)
	assert.Equal(t, "B", dups[0].Subject)
	assert.Contains(t, dups[0].Message, "A and B")
	assert.False(t, diags.HasErrors())

	a, _ := companies.Get("A")
	b, _ := companies.Get("B")
	require.NotNil(t, a.Location)
	require.NotNil(t, b.Location)
	assert.Equal(t, *a.Location, *b.Location)
	assert.Equal(t, 3, companies.Len())
}

func TestParseCompanies_ThreeAtOneLocation(t *testing.T) {
	data := `
A: {location: {latitude: 1, longitude: 2}}
B: {location: {latitude: 1, longitude: 2}}
C: {location: {latitude: 1, longitude: 2}}
`

	_, diags, err := ParseCompanies([]byte(data), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, diags.WithCode("duplicate_location"), 2)
}

func TestParseCompanies_UnknownField(t *testing.T) {
	data := `
[A]
factory = "Works"
founded = 1875
`

	companies, diags, err := ParseCompanies([]byte(data), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, 1, companies.Len())

	unknown := diags.WithCode("unknown_field")
	require.Len(t, unknown, 1)
	assert.Equal(t, "founded", unknown[0].Field)
	assert.Equal(t, "A", unknown[0].Subject)
}

func TestParseCompanies_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		record string
	}{
		{name: "malformed toml", data: "[A\nfactory = 1", format: FormatTOML},
		{name: "malformed yaml", data: "A: [unclosed", format: FormatYAML},
		{name: "yaml top level list", data: "- A\n- B\n", format: FormatYAML},
		{name: "record is not a table", data: "A = 1\n", format: FormatTOML, record: "A"},
		{name: "yaml record is a scalar", data: "A: hello\n", format: FormatYAML, record: "A"},
		{name: "incomplete location", data: "[A]\nlocation = { latitude = 1.0 }\n", format: FormatTOML, record: "A"},
		{name: "wrong type", data: "[A]\ndefunct = \"yes\"\n", format: FormatTOML, record: "A"},
		{name: "duplicate yaml record", data: "A: {}\nA: {}\n", format: FormatYAML, record: "A"},
		{name: "unknown format", data: "", format: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCompanies([]byte(tt.data), tt.format)
			require.Error(t, err)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.record, le.Record)
		})
	}
}

func TestParseCompanies_Empty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			companies, diags, err := ParseCompanies(nil, format)
			require.NoError(t, err)
			assert.Equal(t, 0, companies.Len())
			assert.Zero(t, diags.Len())
		})
	}
}

func TestLoadCompanies(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "companies.toml")
	require.NoError(t, os.WriteFile(path, []byte(companiesTOML), 0o644))

	companies, _, err := LoadCompanies(path)
	require.NoError(t, err)
	assert.Equal(t, 4, companies.Len())

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadCompanies(filepath.Join(dir, "nope.toml"))

		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		bad := filepath.Join(dir, "companies.json")
		require.NoError(t, os.WriteFile(bad, []byte("{}"), 0o644))

		_, _, err := LoadCompanies(bad)
		require.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("parse error carries path", func(t *testing.T) {
		bad := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("A: {location: {latitude: 1}}\n"), 0o644))

		_, _, err := LoadCompanies(bad)

		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, bad, le.Path)
		assert.Equal(t, "A", le.Record)
		assert.Contains(t, err.Error(), bad)
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatFromPath("companies.toml"))
	assert.Equal(t, FormatYAML, FormatFromPath("a/b/pottery.YAML"))
	assert.Equal(t, FormatYAML, FormatFromPath("pottery.yml"))
	assert.Equal(t, FormatUnknown, FormatFromPath("pottery.json"))

	assert.Equal(t, "toml", FormatTOML.String())
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "Format(9)", Format(9).String())
}
