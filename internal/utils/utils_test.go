package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(0))
	assert.True(t, IsEmpty[*int](nil))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty(struct{ A int }{A: 1}))
}

func TestUnwrapInterfaceToPointer(t *testing.T) {
	s := "value"
	var i interface{} = &s

	got := UnwrapInterfaceToPointer[string](i)
	assert.Equal(t, &s, got)

	assert.Nil(t, UnwrapInterfaceToPointer[int](i))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, time.Duration(0), Seconds(0))
	assert.Equal(t, 30*time.Second, Seconds(30))
}
