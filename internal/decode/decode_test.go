package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binanceapi/pkg/core"
)

type item struct {
	Name  *string `json:"name" validate:"required"`
	Count *int    `json:"count" validate:"required"`
}

type record struct {
	ID    *int64 `json:"id" validate:"required"`
	Flag  *bool  `json:"flag" validate:"required"`
	Note  string `json:"note"`
	Items []item `json:"items" validate:"required,dive"`
}

func TestInto(t *testing.T) {
	got, err := Into[record]([]byte(`{"id":7,"flag":false,"items":[{"name":"a","count":0}]}`), "record")
	require.NoError(t, err)

	assert.Equal(t, int64(7), *got.ID)
	assert.False(t, *got.Flag)
	assert.Empty(t, got.Note)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "a", *got.Items[0].Name)
	assert.Equal(t, 0, *got.Items[0].Count)
}

func TestInto_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{"not_json", `<html></html>`, "decode record"},
		{"type_mismatch", `{"id":"seven","flag":true,"items":[]}`, "decode record"},
		{"missing_field", `{"id":7,"items":[]}`, "missing field record.flag"},
		{"missing_nested_field", `{"id":7,"flag":true,"items":[{"name":"a"}]}`, "missing field record.items[0].count"},
		{"missing_list", `{"id":7,"flag":true}`, "missing field record.items"},
		{"null_field", `{"id":null,"flag":true,"items":[]}`, "missing field record.id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Into[record]([]byte(tt.body), "record")
			assert.Nil(t, got)

			var decodeErr *core.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, "record", decodeErr.Target)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Equal(t, core.KindDecode, core.KindOf(err))
		})
	}
}

func TestInto_NonStruct(t *testing.T) {
	got, err := Into[map[string]any]([]byte(`{}`), "ping")
	require.NoError(t, err)
	assert.Empty(t, *got)
}
