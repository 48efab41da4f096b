package vehicles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_StandaloneFourDigits(t *testing.T) {
	assert.Equal(t, []string{"4321"}, Extract("truck 4321 at the gate"))
}

func TestExtract_FourDigitsMustBeBounded(t *testing.T) {
	assert.Empty(t, Extract("order 54321 confirmed"))
	assert.Empty(t, Extract("pin 123"))
}

func TestExtract_KaPrefix(t *testing.T) {
	assert.Equal(t, []string{"KA05HH1234"}, Extract("ka05hh1234 entered"))
}

func TestExtract_GenericPlateShape(t *testing.T) {
	assert.Equal(t, []string{"MH12AB4567"}, Extract("vehicle MH12AB4567 left"))
}

func TestExtract_MultipleIdentifiers(t *testing.T) {
	got := Extract("1234 and KA1234ABCD both inside")
	assert.Contains(t, got, "1234")
	assert.Contains(t, got, "KA1234ABCD")
}

func TestExtract_DuplicatesCollapse(t *testing.T) {
	got := Extract("KA05HH1234 ... again KA05HH1234")
	assert.Equal(t, []string{"KA05HH1234"}, got)
}

func TestExtract_CaseNormalized(t *testing.T) {
	got := Extract("Ka05hh1234")
	assert.Equal(t, []string{"KA05HH1234"}, got)
}

func TestExtract_NoMatches(t *testing.T) {
	assert.Empty(t, Extract("hello there"))
	assert.Empty(t, Extract(""))
}
