package classifier

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTag(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"Alpha1", "ALP"},
		{"BDR-7 rover", "BDR"},
		{"e1t2g3x", "ETG"},
		{"Zo", "ZO"},
		{"1234", ""},
		{"", ""},
		{"  etg_unit", "ETG"},
		{"ÉCHO", "ÉCH"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTag(tt.id))
		})
	}
}

func TestDeriveTagIsPure(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, "ALP", DeriveTag("Alpha1"))
	}
}

func TestPaletteDefaultRules(t *testing.T) {
	p, err := NewPalette(DefaultRules(), "", []string{"BDR", "ETG", "ALP"})
	require.NoError(t, err)

	assert.Equal(t, "#ff0000", p.Color("BDR"))
	assert.Equal(t, "#0000ff", p.Color("ETG"))
	assert.Equal(t, DefaultSeed, p.Seed())
	assert.Equal(t, []string{"ALP", "BDR", "ETG"}, p.Tags())

	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	assert.Regexp(t, hex, p.Color("ALP"))
}

func TestPaletteHashIsSeededAndStable(t *testing.T) {
	a, err := NewPalette(nil, "seed-a", []string{"ALP"})
	require.NoError(t, err)
	again, err := NewPalette(nil, "seed-a", nil)
	require.NoError(t, err)
	b, err := NewPalette(nil, "seed-b", []string{"ALP"})
	require.NoError(t, err)

	assert.Equal(t, a.Color("ALP"), again.Color("ALP"), "same seed must give same color")
	assert.Equal(t, HashColor("seed-a", "ALP"), a.Color("ALP"))
	assert.NotEqual(t, a.Color("ALP"), b.Color("ALP"))
}

func TestPaletteRuleOrderFirstMatchWins(t *testing.T) {
	rules := []ColorRule{
		{Prefix: "al", Color: "#00FF00"},
		{Prefix: "ALP", Color: "red"},
	}
	p, err := NewPalette(rules, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", p.Color("ALP"))
}

func TestPaletteRejectsBadRules(t *testing.T) {
	_, err := NewPalette([]ColorRule{{Prefix: "X", Color: "chartreuse-ish"}}, "", nil)
	assert.Error(t, err)

	_, err = NewPalette([]ColorRule{{Prefix: "", Color: "red"}}, "", nil)
	assert.Error(t, err)

	_, err = NewPalette([]ColorRule{{Prefix: "X", Color: "#12345g"}}, "", nil)
	assert.Error(t, err)
}

func TestNormalizeColor(t *testing.T) {
	c, err := NormalizeColor(" Blue ")
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", c)

	c, err = NormalizeColor("#AbCdEf")
	require.NoError(t, err)
	assert.Equal(t, "#abcdef", c)
}
