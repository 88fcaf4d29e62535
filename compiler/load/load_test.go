package load

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("NoSource", func(t *testing.T) {
		_, err := Load(Source{})
		require.ErrorIs(t, err, ErrNoSource)
	})

	t.Run("TextWins", func(t *testing.T) {
		doc, err := Load(Source{Text: `{"title": "text"}`, Path: "does-not-exist.json"})
		require.NoError(t, err)
		title, ok := doc.String("title")
		require.True(t, ok)
		assert.Equal(t, "text", title)
	})

	t.Run("Path", func(t *testing.T) {
		doc, err := Load(Source{Path: filepath.Join("testdata", "product.json")})
		require.NoError(t, err)
		defs, ok := doc.Object("definitions")
		require.True(t, ok)
		assert.Equal(t, []string{"Category", "Brand", "Product"}, defs.Keys())
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(Source{Path: filepath.Join(t.TempDir(), "missing.json")})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(`{
		"b": 1,
		"a": {"z": true, "y": null},
		"c": [1, "two", {"k": 18446744073709551615}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, doc.Keys())

	a, ok := doc.Object("a")
	require.True(t, ok)
	assert.Equal(t, []string{"z", "y"}, a.Keys())
	assert.True(t, a.Bool("z"))

	b, _ := doc.Get("b")
	assert.Equal(t, json.Number("1"), b)

	c, _ := doc.Get("c")
	arr, ok := c.([]any)
	require.True(t, ok)
	require.Len(t, arr, 3)
	k, _ := arr[2].(*Object).Get("k")
	assert.Equal(t, json.Number("18446744073709551615"), k)
}

func TestParseYAML(t *testing.T) {
	doc, err := Parse([]byte(`
title: Customer
properties:
  last_name:
    type: string
  first_name:
    type: string
    maxLength: 50
required: [first_name]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "properties", "required"}, doc.Keys())

	props, ok := doc.Object("properties")
	require.True(t, ok)
	assert.Equal(t, []string{"last_name", "first_name"}, props.Keys())

	first, _ := props.Object("first_name")
	n, _ := first.Get("maxLength")
	assert.Equal(t, 50, n)

	req, err := doc.Strings("required")
	require.NoError(t, err)
	assert.Equal(t, []string{"first_name"}, req)
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"Empty":    "   ",
		"Array":    `[1, 2]`,
		"Trailing": `{"a": 1} {"b": 2}`,
		"Broken":   `{"a": `,
		"Scalar":   `hello`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(in))
			require.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestObjectStrings(t *testing.T) {
	o := NewObject()
	o.Set("ok", []any{"a", "b"})
	o.Set("bad", []any{"a", 1})
	o.Set("scalar", "a")

	got, err := o.Strings("ok")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = o.Strings("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = o.Strings("bad")
	require.Error(t, err)
	_, err = o.Strings("scalar")
	require.Error(t, err)
}

func TestObjectMarshalJSON(t *testing.T) {
	o := NewObject()
	o.Set("z", 1)
	o.Set("a", []any{"x"})
	o.Set("z", 2)
	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"z":2,"a":["x"]}`, string(b))
}
