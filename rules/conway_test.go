package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyConwayRules(t *testing.T) {
	for neighbors := 0; neighbors <= 8; neighbors++ {
		t.Run(fmt.Sprintf("alive_%d", neighbors), func(t *testing.T) {
			want := neighbors == 2 || neighbors == 3
			assert.Equal(t, want, ApplyConwayRules(neighbors, true))
		})
		t.Run(fmt.Sprintf("dead_%d", neighbors), func(t *testing.T) {
			assert.Equal(t, neighbors == 3, ApplyConwayRules(neighbors, false))
		})
	}
}
