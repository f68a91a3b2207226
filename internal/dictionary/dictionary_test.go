package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedData(t *testing.T) {
	d, err := Load(embeddedData)
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, 1, d.Version())
	assert.Equal(t, []string{"programming", "web", "database", "cloud", "data_science", "tools", "soft_skills"}, d.Categories())
}

func TestLoad_RejectsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "not json",
			data: "not json at all",
		},
		{
			name: "missing categories",
			data: `{"version": 1, "sections": [{"name": "summary", "synonyms": ["summary"]}], "stopwords": ["the"]}`,
		},
		{
			name: "empty category terms",
			data: `{"version": 1, "categories": [{"name": "programming", "terms": []}], "sections": [{"name": "summary", "synonyms": ["summary"]}], "stopwords": ["the"]}`,
		},
		{
			name: "version below minimum",
			data: `{"version": 0, "categories": [{"name": "programming", "terms": ["python"]}], "sections": [{"name": "summary", "synonyms": ["summary"]}], "stopwords": ["the"]}`,
		},
		{
			name: "unknown top-level field",
			data: `{"version": 1, "categories": [{"name": "programming", "terms": ["python"]}], "sections": [{"name": "summary", "synonyms": ["summary"]}], "stopwords": ["the"], "extra": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, d)
		})
	}
}

func TestDefault_SharedInstance(t *testing.T) {
	d1 := Default()
	d2 := Default()
	require.NotNil(t, d1)
	assert.Same(t, d1, d2)
}

func TestDictionary_Terms(t *testing.T) {
	d := Default()

	programming := d.Terms("programming")
	require.NotEmpty(t, programming)
	assert.Equal(t, "python", programming[0])
	assert.Contains(t, programming, "go")
	assert.Contains(t, programming, "r")

	assert.Nil(t, d.Terms("no_such_category"))

	// Accessors hand out copies, not the backing arrays.
	programming[0] = "mutated"
	assert.Equal(t, "python", d.Terms("programming")[0])
}

func TestDictionary_Find(t *testing.T) {
	d := Default()

	tests := []struct {
		term     string
		category string
		found    bool
	}{
		{"python", "programming", true},
		{"Python", "programming", true},
		{"react", "web", true},
		{"aws", "cloud", true},
		{"machine learning", "data_science", true},
		{"leadership", "soft_skills", true},
		{"cobol", "", false},
	}

	for _, tt := range tests {
		category, ok := d.Find(tt.term)
		assert.Equal(t, tt.found, ok, "term %q", tt.term)
		assert.Equal(t, tt.category, category, "term %q", tt.term)
	}
}

func TestDictionary_FirstCategoryOwnsSharedTerm(t *testing.T) {
	data := `{
		"version": 1,
		"categories": [
			{"name": "first", "terms": ["shared", "alpha"]},
			{"name": "second", "terms": ["shared", "beta"]}
		],
		"sections": [{"name": "summary", "synonyms": ["summary"]}],
		"stopwords": ["the"]
	}`

	d, err := Load([]byte(data))
	require.NoError(t, err)

	category, ok := d.Find("shared")
	require.True(t, ok)
	assert.Equal(t, "first", category)

	all := d.AllTerms()
	assert.Equal(t, []string{"shared", "alpha", "beta"}, all)
}

func TestDictionary_Canonical(t *testing.T) {
	d := Default()

	tests := []struct {
		term string
		want string
	}{
		{"python", "Python"},
		{"react", "React"},
		{"aws", "AWS"},
		{"docker", "Docker"},
		{"node.js", "Node.js"},
		{"javascript", "JavaScript"},
		{"machine learning", "Machine Learning"},
		{"ci/cd", "CI/CD"},
		{"vs code", "VS Code"},
		{"c++", "C++"},
		{"r", "R"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, d.Canonical(tt.term), "term %q", tt.term)
	}
}

func TestDictionary_Sections(t *testing.T) {
	d := Default()

	sections := d.Sections()
	require.Len(t, sections, 6)
	assert.Equal(t, "summary", sections[0].Name)
	assert.Contains(t, sections[0].Synonyms, "objective")

	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"summary", "experience", "education", "skills", "certifications", "projects"}, names)
}

func TestDictionary_IsStopword(t *testing.T) {
	d := Default()

	assert.True(t, d.IsStopword("the"))
	assert.True(t, d.IsStopword("The"))
	assert.True(t, d.IsStopword("experience"))
	assert.False(t, d.IsStopword("kubernetes"))
	assert.False(t, d.IsStopword(""))
}
