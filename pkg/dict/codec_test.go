package dict

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/tokmz/dictsync/pkg/errors"
)

func TestDecodeFlat_KeepsOrderDuplicateLastWins(t *testing.T) {
	entries, err := DecodeFlat(strings.NewReader(`{"z.a": "1", "a.b": 2, "z.a": "dup", "m": null}`))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// 重复键保留首次出现的位置，值取最后一次
	assert.Equal(t, []string{"z.a", "a.b", "m"}, keysOf(entries))
	assert.Equal(t, "dup", entries[0].Value.Str())
	assert.Equal(t, json.Number("2"), entries[1].Value.Num())
	assert.Equal(t, NullKind, entries[2].Value.Kind())
}

func TestDecodeFlat_DuplicateThenDeflatten(t *testing.T) {
	entries, err := DecodeFlat(strings.NewReader(`{"a.b": 1, "a.b": 2}`))
	require.NoError(t, err)

	tree, err := Deflatten(entries)
	require.NoError(t, err)
	out, err := Marshal(tree)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": {\n    \"b\": 2\n  }\n}", string(out))
}

func TestDecodeFlat_NestedValues(t *testing.T) {
	entries, err := DecodeFlat(strings.NewReader(`{"k": {"y": [1, true, "s"], "x": 1.50}}`))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	m := entries[0].Value.Map()
	require.NotNil(t, m)
	assert.Equal(t, []string{"y", "x"}, m.Keys())

	y, _ := m.Get("y")
	require.Len(t, y.Items(), 3)
	assert.True(t, y.Items()[1].Boolean())

	x, _ := m.Get("x")
	assert.Equal(t, json.Number("1.50"), x.Num())
}

func TestDecodeFlat_EmptyArrayIsEmptyDictionary(t *testing.T) {
	entries, err := DecodeFlat(strings.NewReader(" [] "))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDecodeFlat_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"not an object", `["a"]`, ErrNotObject},
		{"scalar", `"text"`, ErrNotObject},
		{"malformed", `{"a": }`, ErrDecode},
		{"truncated", `{"a": "b"`, ErrDecode},
		{"trailing data", `{"a": "b"} {}`, ErrDecode},
		{"empty body", ``, ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFlat(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, qerrors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestEncode_Layout(t *testing.T) {
	m := MapOf(
		e("b", obj(e("title", String("Übersicht <b> & \"mehr\"")), e("n", Number("1.0")))),
		e("a", String("日本語")),
		e("empty", obj()),
		e("list", Array(Int(1), Null())),
	)

	var sb strings.Builder
	require.NoError(t, Encode(&sb, m))

	want := `{
  "b": {
    "title": "Übersicht <b> & \"mehr\"",
    "n": 1.0
  },
  "a": "日本語",
  "empty": {},
  "list": [
    1,
    null
  ]
}`
	assert.Equal(t, want, sb.String())
}

func TestEncode_EmptyMap(t *testing.T) {
	out, err := Marshal(NewMap())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestMap_JSONRoundTrip(t *testing.T) {
	src := `{"z":1,"a":{"y":"é","b":[true,false]},"m":null}`

	var m Map
	require.NoError(t, json.Unmarshal([]byte(src), &m))
	assert.Equal(t, []string{"z", "a", "m"}, m.Keys())

	out, err := json.Marshal(&m)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestMap_UnmarshalRejectsNonObject(t *testing.T) {
	var m Map
	err := json.Unmarshal([]byte(`[1]`), &m)
	require.Error(t, err)
	assert.True(t, qerrors.Is(err, ErrNotObject))
}

func TestMap_SetReplacesInPlace(t *testing.T) {
	m := MapOf(e("a", Int(1)), e("b", Int(2)))
	m.Set("a", Int(3))
	assert.False(t, m.SetIfAbsent("b", Int(9)))
	assert.True(t, m.SetIfAbsent("c", Int(4)))

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	a, _ := m.Get("a")
	assert.Equal(t, json.Number("3"), a.Num())
	b, _ := m.Get("b")
	assert.Equal(t, json.Number("2"), b.Num())
}

func keysOf(entries []Entry) []string {
	keys := make([]string, len(entries))
	for i, en := range entries {
		keys[i] = en.Key
	}
	return keys
}
