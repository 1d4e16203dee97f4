package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tracker/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("slot")
	assert.Equal(t, "slot_1", gen.Generate())
	assert.Equal(t, "slot_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	plain := idgen.NewUUID("").Generate()
	_, err := uuid.Parse(plain)
	require.NoError(t, err)

	prefixed := idgen.NewUUID("char").Generate()
	require.True(t, strings.HasPrefix(prefixed, "char_"))
	_, err = uuid.Parse(strings.TrimPrefix(prefixed, "char_"))
	require.NoError(t, err)

	assert.NotEqual(t, plain, idgen.NewUUID("").Generate())
}

func TestFunc(t *testing.T) {
	gen := idgen.Func(func() string { return "fixed" })
	assert.Equal(t, "fixed", gen.Generate())
}
