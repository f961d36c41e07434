package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalAttributes(t *testing.T) {
	out, err := marshalAttributes(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), out, "inserts default to an empty object")

	out, err = marshalAttributes(map[string]string{"seats": "5"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"seats": "5"}`, string(out))
}

func TestAttributesUpdateParam(t *testing.T) {
	out, err := attributesUpdateParam(nil)
	require.NoError(t, err)
	assert.Nil(t, out, "omitted attributes must bind as NULL so the update keeps the stored value")

	out, err = attributesUpdateParam(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), out, "an explicit empty map clears the stored value")

	out, err = attributesUpdateParam(map[string]string{"doors": "4"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"doors": "4"}`, string(out))
}
