package main

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCursorNavigation(t *testing.T) {
	tests := []struct {
		name        string
		length      int
		initialIdx  int
		operation   string
		expectedIdx int
		moved       bool
	}{
		{"Forward from start", 5, 0, "forward", 1, true},
		{"Back from middle", 5, 2, "back", 1, true},
		{"Back at first is a no-op", 5, 0, "back", 0, false},
		{"Forward at last is a no-op", 5, 4, "forward", 4, false},
		{"Single entry forward", 1, 0, "forward", 0, false},
		{"Single entry back", 1, 0, "back", 0, false},
		{"Empty list forward", 0, 0, "forward", 0, false},
		{"Empty list back", 0, 0, "back", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.length)
			c.Seek(tt.initialIdx)

			var moved bool
			if tt.operation == "forward" {
				moved = c.StepForward()
			} else {
				moved = c.StepBack()
			}

			assert.Equal(t, tt.expectedIdx, c.Index())
			assert.Equal(t, tt.moved, moved)
		})
	}
}

func TestCursorBoundariesAreIdempotent(t *testing.T) {
	c := NewCursor(3)
	for i := 0; i < 5; i++ {
		c.StepBack()
	}
	assert.Equal(t, 0, c.Index())
	assert.True(t, c.AtStart())

	for i := 0; i < 10; i++ {
		c.StepForward()
	}
	assert.Equal(t, 2, c.Index())
	assert.True(t, c.AtEnd())
}

func TestCursorSeek(t *testing.T) {
	c := NewCursor(4)

	c.Seek(2)
	assert.Equal(t, 2, c.Index())
	c.Seek(-3)
	assert.Equal(t, 0, c.Index())
	c.Seek(40)
	assert.Equal(t, 3, c.Index())

	empty := NewCursor(-1)
	empty.Seek(5)
	assert.Equal(t, 0, empty.Index())
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Valid())
	assert.True(t, empty.AtEnd())
}

func TestProperty_CursorStaysInRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("index stays within [0, len-1] after any step sequence", prop.ForAll(
		func(length int, start int, steps []bool) bool {
			c := NewCursor(length)
			c.Seek(start)
			for _, forward := range steps {
				if forward {
					c.StepForward()
				} else {
					c.StepBack()
				}
				if c.Index() < 0 {
					return false
				}
				if length > 0 && c.Index() > length-1 {
					return false
				}
				if length == 0 && c.Index() != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 50),
		gen.IntRange(-10, 60),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("a step moves the index by exactly one or not at all", prop.ForAll(
		func(length int, start int, forward bool) bool {
			c := NewCursor(length)
			c.Seek(start)
			before := c.Index()

			var moved bool
			if forward {
				moved = c.StepForward()
			} else {
				moved = c.StepBack()
			}

			delta := c.Index() - before
			if !moved {
				return delta == 0
			}
			if forward {
				return delta == 1
			}
			return delta == -1
		},
		gen.IntRange(0, 50),
		gen.IntRange(0, 50),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
