package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGrapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"json list", `["Merlot","Cabernet Sauvignon"]`, []string{"Merlot", "Cabernet Sauvignon"}},
		{"empty", "", []string{}},
		{"json null", "null", []string{}},
		{"json string", `"Riesling"`, []string{"Riesling"}},
		{"legacy bare string", "Saperavi", []string{"Saperavi"}},
		{"malformed list", `["Merlot",`, []string{`["Merlot",`}},
		{"json object", `{"a":1}`, []string{`{"a":1}`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodeGrapes(tc.raw))
		})
	}
}

func TestSetGrapesRoundTrip(t *testing.T) {
	var w Wine
	w.SetGrapes([]string{" Merlot ", "", "Шардоне"})

	require.NotNil(t, w.Grape)
	assert.Equal(t, []string{"Merlot", "Шардоне"}, w.Grapes())

	w.SetGrapes(nil)
	assert.Nil(t, w.Grape)
	assert.Equal(t, []string{}, w.Grapes())
}

func TestStem(t *testing.T) {
	assert.Equal(t, "kab_sov", Stem("Kab_Sov.PDF"))
	assert.Equal(t, "kab_sov", Stem("dir/kab_sov.webp"))
	assert.Equal(t, "noext", Stem("noext"))
	assert.Equal(t, "", Stem(""))

	w := Wine{PdfFile: "Rkatsiteli_ab12cd.pdf"}
	assert.Equal(t, "rkatsiteli_ab12cd", w.AssetStem())
}

func TestEnums(t *testing.T) {
	assert.True(t, ColorPink.Valid())
	assert.False(t, WineColor("orange").Valid())
	assert.True(t, SugarSemiSweet.Valid())
	assert.False(t, SugarLevel("").Valid())
}
