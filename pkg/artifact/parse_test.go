package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMixedResponse(t *testing.T) {
	response := "Here is the analysis.\n" +
		"```python\nprint(\"hi\")\n```\n" +
		"And the chart:\n" +
		"```chart\n{\"data\": [{\"type\": \"pie\", \"labels\": [\"a\"], \"values\": [1]}]}\n```\n" +
		"<followup_questions>\n- What about Q2?\n- Split by region?\n</followup_questions>"

	segments := Parse(response)
	require.Len(t, segments, 5)

	assert.Equal(t, KindText, segments[0].Kind)
	assert.Contains(t, segments[0].Text, "analysis")

	assert.Equal(t, KindCode, segments[1].Kind)
	assert.Equal(t, "python", segments[1].Language)
	assert.Equal(t, "print(\"hi\")\n", segments[1].Text)

	assert.Equal(t, KindText, segments[2].Kind)

	require.Equal(t, KindChart, segments[3].Kind)
	require.NotNil(t, segments[3].Figure)
	require.Len(t, segments[3].Figure.Data, 1)
	assert.Equal(t, "pie", segments[3].Figure.Data[0].Type())

	require.Equal(t, KindFollowups, segments[4].Kind)
	assert.Equal(t, []string{"What about Q2?", "Split by region?"}, segments[4].Questions)
}

func TestParsePlainText(t *testing.T) {
	segments := Parse("just a sentence")
	require.Len(t, segments, 1)
	assert.Equal(t, KindText, segments[0].Kind)
	assert.Equal(t, "just a sentence", segments[0].Text)
}

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("   \n  "))
}

func TestParseCodeDefaultLanguage(t *testing.T) {
	segments := Parse("```\nls -la\n```")
	require.Len(t, segments, 1)
	assert.Equal(t, KindCode, segments[0].Kind)
	assert.Equal(t, "python", segments[0].Language)
}

func TestParseCodeExplicitLanguage(t *testing.T) {
	segments := Parse("```SQL\nselect 1;\n```")
	require.Len(t, segments, 1)
	assert.Equal(t, "sql", segments[0].Language)
}

func TestParseChartURL(t *testing.T) {
	segments := Parse("```chart\nhttps://charts.example.com/fig/42.json\n```")
	require.Len(t, segments, 1)
	assert.Equal(t, KindChart, segments[0].Kind)
	assert.Nil(t, segments[0].Figure)
	assert.Equal(t, "https://charts.example.com/fig/42.json", segments[0].Ref)
}

func TestParseChartMalformedBody(t *testing.T) {
	// Neither a figure nor a URL: the block degrades to text instead of
	// failing the whole parse.
	segments := Parse("before\n```chart\n{{{not json\n```")
	require.Len(t, segments, 2)
	assert.Equal(t, KindText, segments[0].Kind)
	assert.Equal(t, KindText, segments[1].Kind)
	assert.Contains(t, segments[1].Text, "not json")
}

func TestParseUnterminatedFence(t *testing.T) {
	segments := Parse("text\n```python\nno closing fence")
	require.Len(t, segments, 1)
	assert.Equal(t, KindText, segments[0].Kind)
}

func TestParseFollowupNumberedList(t *testing.T) {
	segments := Parse("<followup_questions>\n1. First?\n2) Second?\n\n</followup_questions>")
	require.Len(t, segments, 1)
	assert.Equal(t, []string{"First?", "Second?"}, segments[0].Questions)
}

func TestParseOrderPreserved(t *testing.T) {
	response := "```go\na\n```\nmiddle\n```chart\nhttps://x.example/f.json\n```"
	segments := Parse(response)
	require.Len(t, segments, 3)
	assert.Equal(t, KindCode, segments[0].Kind)
	assert.Equal(t, KindText, segments[1].Kind)
	assert.Equal(t, KindChart, segments[2].Kind)
}
