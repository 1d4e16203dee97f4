package engine

import (
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

var (
	fullCasterCapstone = SlotRow{4, 3, 3, 3, 3, 2, 2, 1, 1}
	halfCasterCapstone = SlotRow{4, 3, 3, 3, 2, 0, 0, 0, 0}
)

// VerifyTables checks the built-in slot tables for internal consistency:
// slot counts never shrink as level rises and the level 20 rows match the
// published progression.
func VerifyTables() error {
	vb := errors.NewValidationBuilder()

	checkTable(vb, "full_caster", &fullCasterTable)
	checkTable(vb, "half_caster", &halfCasterTable)

	if got := FullCasterSlots(20); got != fullCasterCapstone {
		vb.Fieldf("full_caster", "level 20 row is %v, expected %v", got, fullCasterCapstone)
	}
	if got := HalfCasterSlots(20); got != halfCasterCapstone {
		vb.Fieldf("half_caster", "level 20 row is %v, expected %v", got, halfCasterCapstone)
	}

	return vb.Build()
}

func checkTable(vb *errors.ValidationBuilder, name string, table *[20]SlotRow) {
	for lvl := 1; lvl < len(table); lvl++ {
		prev, cur := table[lvl-1], table[lvl]
		for spell := range cur {
			if cur[spell] < 0 {
				vb.Fieldf(name, "level %d has negative count for spell level %d", lvl+1, spell+1)
			}
			if cur[spell] < prev[spell] {
				vb.Fieldf(name, "level %d has fewer spell level %d slots than level %d", lvl+1, spell+1, lvl)
			}
		}
	}
}
