package ghgql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nestedResponse() map[string]interface{} {
	return map[string]interface{}{
		"data": map[string]interface{}{
			"status": map[string]interface{}{
				"item": map[string]interface{}{
					"id": "123",
				},
			},
		},
	}
}

func errorsResponse() map[string]interface{} {
	return map[string]interface{}{
		"errors": []interface{}{
			map[string]interface{}{
				"message": "Field 'MADEUPFIELD' doesn't exist on type 'User'",
				"extensions": map[string]interface{}{
					"code":      "undefinedField",
					"fieldName": "MADEUPFIELD",
					"typeName":  "User",
				},
			},
		},
	}
}

func TestResult_Get(t *testing.T) {
	tests := []struct {
		name     string
		response map[string]interface{}
		path     string
		opts     []GetOption
		expected interface{}
	}{
		{
			"resolves nested value",
			nestedResponse(),
			"status.item.id",
			nil,
			"123",
		},
		{
			"resolved value wins over default",
			nestedResponse(),
			"status.item.id",
			[]GetOption{WithDefault(42)},
			"123",
		},
		{
			"intermediate mapping returned as-is",
			nestedResponse(),
			"status.item",
			nil,
			map[string]interface{}{"id": "123"},
		},
		{
			"unresolved segment returns default",
			nestedResponse(),
			"status.item.id2",
			[]GetOption{WithDefault(42)},
			42,
		},
		{
			"unresolved first segment returns default",
			nestedResponse(),
			"nope",
			[]GetOption{WithDefault("fallback")},
			"fallback",
		},
		{
			"empty response returns default",
			map[string]interface{}{},
			"status",
			[]GetOption{WithDefault("fallback")},
			"fallback",
		},
		{
			"null data returns default",
			map[string]interface{}{"data": nil},
			"status",
			[]GetOption{WithDefault("fallback")},
			"fallback",
		},
		{
			"null cursor mid-path returns default",
			map[string]interface{}{"data": map[string]interface{}{"a": nil}},
			"a.b",
			[]GetOption{WithDefault("fallback")},
			"fallback",
		},
		{
			"scalar cursor returns default",
			map[string]interface{}{"data": map[string]interface{}{"a": 1.0}},
			"a.b",
			[]GetOption{WithDefault("fallback")},
			"fallback",
		},
		{
			"sequence cursor returns default",
			map[string]interface{}{"data": map[string]interface{}{"a": []interface{}{"x"}}},
			"a.b",
			[]GetOption{WithDefault("fallback")},
			"fallback",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := NewResult(test.response).Get(test.path, test.opts...)
			require.NoError(t, err)

			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestResult_Get_Errors(t *testing.T) {
	tests := []struct {
		name     string
		response map[string]interface{}
		path     string
		opts     []GetOption
		check    func(t *testing.T, err error)
	}{
		{
			"unresolved path without default",
			nestedResponse(),
			"status.item.id2",
			nil,
			func(t *testing.T, err error) {
				var pathErr *PathNotFoundError
				require.True(t, errors.As(err, &pathErr))
				assert.Equal(t, "status.item.id2", pathErr.Path)
				assert.Equal(t, "id2", pathErr.Segment)
			},
		},
		{
			"null cursor mid-path without default",
			map[string]interface{}{"data": map[string]interface{}{"a": nil}},
			"a.b",
			nil,
			func(t *testing.T, err error) {
				var pathErr *PathNotFoundError
				require.True(t, errors.As(err, &pathErr))
				assert.Equal(t, "b", pathErr.Segment)
			},
		},
		{
			"empty path",
			nestedResponse(),
			"",
			nil,
			func(t *testing.T, err error) {
				var pathErr *InvalidPathError
				require.True(t, errors.As(err, &pathErr))
			},
		},
		{
			"empty segment ignores default",
			nestedResponse(),
			"status.item..foo",
			[]GetOption{WithDefault(42)},
			func(t *testing.T, err error) {
				var pathErr *InvalidPathError
				require.True(t, errors.As(err, &pathErr))
				assert.Equal(t, "status.item..foo", pathErr.Path)
			},
		},
		{
			"invalid path reported before errors check",
			errorsResponse(),
			"status..id",
			nil,
			func(t *testing.T, err error) {
				var pathErr *InvalidPathError
				require.True(t, errors.As(err, &pathErr))
			},
		},
		{
			"response errors without default",
			errorsResponse(),
			"status.item.id",
			nil,
			func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrResponseErrors))
			},
		},
		{
			"response errors ignore default",
			errorsResponse(),
			"status.item.id",
			[]GetOption{WithDefault(42)},
			func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrResponseErrors))
			},
		},
		{
			"empty errors list still short-circuits",
			map[string]interface{}{"errors": []interface{}{}},
			"status",
			[]GetOption{WithDefault(42)},
			func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrResponseErrors))
			},
		},
		{
			"empty response without default",
			map[string]interface{}{},
			"status",
			nil,
			func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrNoData))
			},
		},
		{
			"null data without default",
			map[string]interface{}{"data": nil},
			"status",
			nil,
			func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrNoData))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := NewResult(test.response).Get(test.path, test.opts...)
			require.Error(t, err)
			assert.Nil(t, actual)

			test.check(t, err)
		})
	}
}

func TestResult_Get_EmbeddedJSON(t *testing.T) {
	response := map[string]interface{}{
		"data": map[string]interface{}{
			"status": map[string]interface{}{
				"item":    `{"id":"123","labels":["a","b"]}`,
				"literal": "null",
				"text":    "plain words",
			},
		},
	}

	result := NewResult(response)

	t.Run("descends into json encoded string", func(t *testing.T) {
		actual, err := result.Get("status.item.id")
		require.NoError(t, err)
		assert.Equal(t, "123", actual)
	})

	t.Run("decoded sequences come back as values", func(t *testing.T) {
		actual, err := result.Get("status.item.labels")
		require.NoError(t, err)
		assert.Equal(t, []interface{}{"a", "b"}, actual)
	})

	t.Run("final string value is returned raw", func(t *testing.T) {
		actual, err := result.Get("status.item")
		require.NoError(t, err)
		assert.Equal(t, `{"id":"123","labels":["a","b"]}`, actual)
	})

	t.Run("literal null string is not decoded", func(t *testing.T) {
		_, err := result.Get("status.literal.anything")

		var pathErr *PathNotFoundError
		require.True(t, errors.As(err, &pathErr))
		assert.Equal(t, "anything", pathErr.Segment)
	})

	t.Run("non json string misses like a scalar", func(t *testing.T) {
		actual, err := result.Get("status.text.anything", WithDefault("fallback"))
		require.NoError(t, err)
		assert.Equal(t, "fallback", actual)
	})
}

func TestResult_Data(t *testing.T) {
	result := NewResult(nestedResponse())

	assert.Equal(t, map[string]interface{}{
		"status": map[string]interface{}{
			"item": map[string]interface{}{
				"id": "123",
			},
		},
	}, result.Data())

	assert.Nil(t, NewResult(map[string]interface{}{}).Data())
	assert.Nil(t, NewResult(map[string]interface{}{"data": nil}).Data())
}

func TestResult_Errors(t *testing.T) {
	expected := []interface{}{
		map[string]interface{}{
			"message": "Field 'MADEUPFIELD' doesn't exist on type 'User'",
			"extensions": map[string]interface{}{
				"code":      "undefinedField",
				"fieldName": "MADEUPFIELD",
				"typeName":  "User",
			},
		},
	}

	assert.Equal(t, expected, NewResult(errorsResponse()).Errors())
	assert.Nil(t, NewResult(map[string]interface{}{}).Errors())
	assert.Nil(t, NewResult(map[string]interface{}{"errors": nil}).Errors())
}

func TestResult_Equality(t *testing.T) {
	assert.Equal(t, NewResult(nestedResponse()), NewResult(nestedResponse()))
	assert.Equal(t, nestedResponse(), NewResult(nestedResponse()).Raw())
}
