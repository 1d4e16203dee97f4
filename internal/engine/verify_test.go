package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-tracker/internal/engine"
)

func TestVerifyTables(t *testing.T) {
	assert.NoError(t, engine.VerifyTables())
}

func TestTableLookupClamping(t *testing.T) {
	assert.Equal(t, engine.SlotRow{}, engine.FullCasterSlots(0))
	assert.Equal(t, engine.SlotRow{}, engine.HalfCasterSlots(-3))
	assert.Equal(t, engine.FullCasterSlots(20), engine.FullCasterSlots(35))
	assert.Equal(t, engine.HalfCasterSlots(20), engine.HalfCasterSlots(21))
	assert.Equal(t, engine.SlotRow{2}, engine.FullCasterSlots(1))
	assert.Equal(t, 7, engine.EffectiveCasterLevel(5, 5))
}
