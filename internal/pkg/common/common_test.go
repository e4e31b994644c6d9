package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestIsValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("score recipe: %w", NewValidationError("profile is nil"))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(errors.New("boom")))
	assert.False(t, IsValidationError(nil))
}

func TestCustomError_WrapAndResponse(t *testing.T) {
	cause := errors.New("upstream 500")
	err := ErrRecipeSource.Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeRecipeSource, err.Code)
	assert.Equal(t, "upstream 500", err.Error())

	assert.Empty(t, err.Response(false).Details)
	assert.Equal(t, "upstream 500", err.Response(true).Details)
	// 原本的預定義錯誤不可被修改
	assert.Nil(t, ErrRecipeSource.Err)
}

func TestParseJSONBytes_RejectsTrailingData(t *testing.T) {
	var v map[string]int
	require.NoError(t, ParseJSONBytes([]byte(`{"a":1}`), &v))
	assert.Equal(t, 1, v["a"])

	assert.Error(t, ParseJSONBytes([]byte(`{"a":1}{"b":2}`), &v))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"produce", CategoryProduce, true},
		{"Produce", CategoryProduce, true},
		{" MEAT ", CategoryMeat, true},
		{"Meat & Seafood", CategoryMeat, true},
		{"meat_seafood", CategoryMeat, true},
		{"grains-pasta", CategoryGrains, true},
		{"Fruits", CategoryProduce, true},
		{"Dairy", CategoryDairy, true},
		{"other", CategoryOther, true},
		{"", "", false},
		{"pet food", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestFilterFields_DropsSecrets(t *testing.T) {
	fields := filterFields([]zap.Field{
		zap.String("recipe_api_key", "secret"),
		zap.String("Authorization", "Bearer x"),
		zap.Int("candidates", 3),
	})
	require.Len(t, fields, 1)
	assert.Equal(t, "candidates", fields[0].Key)
}

func TestHashString_Stable(t *testing.T) {
	assert.Equal(t, HashString("milk"), HashString("milk"))
	assert.NotEqual(t, HashString("milk"), HashString("milks"))
	assert.Len(t, HashString(""), 64)
}
