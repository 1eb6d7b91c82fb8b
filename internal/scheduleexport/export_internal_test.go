package scheduleexport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinCodes_EmptyInput(t *testing.T) {
	assert.Equal(t, "", joinCodes(nil))
}

func TestJoinCodes_JoinsWithSlash(t *testing.T) {
	assert.Equal(t, "A/B/C", joinCodes([]string{"A", "B", "C"}))
}

func TestJoinCodes_SingleCode(t *testing.T) {
	assert.Equal(t, "VACATION", joinCodes([]string{"VACATION"}))
}
