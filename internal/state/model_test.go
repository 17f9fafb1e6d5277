package state

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorText(t *testing.T) {
	assert.Equal(t, "#ff0000", Red.String())
	assert.Equal(t, "#00ff0080", Color{G: 255, A: 128}.String())

	c, err := ParseColor("#00FFFF")
	require.NoError(t, err)
	assert.Equal(t, Cyan, c)

	c, err = ParseColor("11223344")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, c)

	for _, bad := range []string{"", "#123", "#zzzzzz", "#1234567"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorIsImageColor(t *testing.T) {
	var c color.Color = Magenta
	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestFontFamilyNames(t *testing.T) {
	for _, f := range FontFamilies() {
		parsed, err := ParseFontFamily(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	f, err := ParseFontFamily("Sans Serif")
	require.NoError(t, err)
	assert.Equal(t, FontSansSerif, f)

	_, err = ParseFontFamily("comic")
	assert.Error(t, err)
	assert.False(t, FontFamily(9).Valid())
}

func TestSelectionJSON(t *testing.T) {
	b, err := json.Marshal(NoSelection)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = json.Marshal(Selected("abc"))
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(b))

	var sel Selection
	require.NoError(t, json.Unmarshal([]byte(`"xyz"`), &sel))
	assert.True(t, sel.Is("xyz"))
	require.NoError(t, json.Unmarshal([]byte(`null`), &sel))
	_, ok := sel.Get()
	assert.False(t, ok)
}

func TestTextElementJSON(t *testing.T) {
	el := NewTextElement("e1", Point{3, 4})
	el.FontFamily = FontMonospace
	el.Color = Blue
	b, err := json.Marshal(el)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"font_family":"monospace"`)
	assert.Contains(t, string(b), `"color":"#0000ff"`)
}

func TestSelectedText(t *testing.T) {
	s := NewDocument(0)
	_, ok := s.SelectedText()
	assert.False(t, ok)

	s.TextElements = []TextElement{NewTextElement("a", Point{}), NewTextElement("b", Point{})}
	s.Selection = Selected("b")
	el, ok := s.SelectedText()
	require.True(t, ok)
	assert.Equal(t, "b", el.ID)
	assert.Equal(t, -1, s.TextIndex("c"))
}
