package launch

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_AcceptsComments(t *testing.T) {
	src := `{
    // Use IntelliSense to learn about possible attributes.
    "version": "0.2.0",
    "configurations": [
        {"name": "a", "type": "cortex-debug",}, /* trailing comma */
    ],
}`
	doc, err := ParseDocument([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", doc.Version)
	require.Len(t, doc.Configurations, 1)
	assert.Equal(t, "a", doc.Summaries()[0].Name)
}

func TestParseDocument_Rejects(t *testing.T) {
	for name, src := range map[string]string{
		"empty":              ``,
		"truncated":          `{"version": "0.2.0", "configurations": [`,
		"array":              `[]`,
		"null":               `null`,
		"string":             `"launch"`,
		"configurations map": `{"configurations": {"name": "a"}}`,
		"numeric version":    `{"version": 2, "configurations": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDocument([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestParseDocument_Defaults(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"configurations": null}`))
	require.NoError(t, err)
	assert.Equal(t, Version, doc.Version)
	assert.NotNil(t, doc.Configurations)
	assert.Empty(t, doc.Configurations)
}

func TestParseDocument_KeepsVersion(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"version": "0.1.0"}`))
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", doc.Version)
}

func TestDocument_EncodeKeepsExtraKeys(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
        "inputs": [{"id": "port", "type": "promptString"}],
        "configurations": [],
        "compounds": [{"name": "both", "configurations": ["a", "b"]}],
        "version": "0.2.0"
    }`))
	require.NoError(t, err)
	require.NoError(t, doc.Prepend(NewEntry(stm32)))

	out, err := doc.Encode()
	require.NoError(t, err)

	s := string(out)
	iVersion := strings.Index(s, `"version"`)
	iConfigurations := strings.Index(s, `"configurations"`)
	iCompounds := strings.Index(s, `"compounds"`)
	iInputs := strings.Index(s, `"inputs"`)
	assert.True(t, iVersion < iConfigurations)
	assert.True(t, iConfigurations < iCompounds)
	assert.True(t, iCompounds < iInputs)

	var back map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Len(t, back["compounds"], 1)
	assert.Len(t, back["inputs"], 1)
	assert.Len(t, back["configurations"], 1)
}

func TestDocument_EncodeDoesNotEscapeHTML(t *testing.T) {
	doc := NewDocument()
	in := stm32
	in.ExecutablePath = "build/<board>&app.elf"
	require.NoError(t, doc.Prepend(NewEntry(in)))

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"executable": "build/<board>&app.elf"`)
}

func TestDocument_EncodeEmpty(t *testing.T) {
	out, err := (&Document{Version: Version}).Encode()
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"version\": \"0.2.0\",\n    \"configurations\": []\n}\n", string(out))
}

func TestDocument_SummariesSkipNonObjects(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"configurations": [42, {"name": "b", "type": "node"}]}`))
	require.NoError(t, err)

	s := doc.Summaries()
	require.Len(t, s, 2)
	assert.Equal(t, Summary{}, s[0])
	assert.Equal(t, "b", s[1].Name)
}
