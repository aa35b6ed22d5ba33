package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNative(t *testing.T) {
	v, err := FromNative(map[string]any{
		"b":    []any{1, 2.5, "x", nil, true},
		"a":    int64(7),
		"next": map[string]any{"k": false},
	})
	require.NoError(t, err)
	assert.Equal(t, "{a: 7, b: [1, 2.5, x, null, true], next: {k: false}}", v.String())

	_, err = FromNative(struct{}{})
	assert.Error(t, err)
}

func TestToNative(t *testing.T) {
	m := MapOf(
		String("n"), Int(3),
		String("f"), Float(0.5),
		String("l"), NewList(True, NullValue, String("s")),
		Int(1), String("numeric key"),
	)

	assert.Equal(t, map[string]any{
		"n": int32(3),
		"f": 0.5,
		"l": []any{true, nil, "s"},
		"1": "numeric key",
	}, ToNative(m))
	assert.Equal(t, []any{int32(1)}, ToNative(NewUnpacked([]Value{Int(1)})))
}

func TestJSONRoundTrip(t *testing.T) {
	original := MapOf(
		String("count"), Int(9007199254740993),
		String("ratio"), Float(0.25),
		String("tags"), NewList(String("a"), String("b")),
		String("none"), NullValue,
	)

	data, err := ToJSON(original)
	require.NoError(t, err)

	decoded, err := FromJSON(data)
	require.NoError(t, err)
	assert.True(t, Equal(original, decoded))

	count := decoded.(*Map).Get(String("count")).(Number)
	assert.True(t, count.IsExact())
	assert.Equal(t, int64(9007199254740993), count.Int64())
}

func TestToJSON_NonFinite(t *testing.T) {
	data, err := ToJSON(NewList(Float(math.Inf(1)), Float(math.NaN())))
	require.NoError(t, err)
	assert.JSONEq(t, `["INFINITY", "NaN"]`, string(data))
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte("{"))
	assert.Error(t, err)
}
