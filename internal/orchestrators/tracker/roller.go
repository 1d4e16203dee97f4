package tracker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

// Supports "2d6", "1d8+3", "3d4-1"
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)(?:([+-])(\d+))?$`)

const maxDiceCount = 100

// Roll is the outcome of rolling a damage or healing expression
type Roll struct {
	Notation    string
	Total       int
	Description string
}

// Roller rolls dice notation for damage and healing amounts
type Roller interface {
	Roll(notation string) (*Roll, error)
}

type toolkitRoller struct{}

// NewRoller returns a Roller backed by rpg-toolkit dice
func NewRoller() Roller {
	return &toolkitRoller{}
}

func (r *toolkitRoller) Roll(notation string) (*Roll, error) {
	count, size, modifier, err := parseDiceNotation(notation)
	if err != nil {
		return nil, err
	}

	roll, err := dice.NewRoll(count, size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create dice roll")
	}

	total := roll.GetValue() + modifier
	description := roll.GetDescription()
	if modifier != 0 {
		description = fmt.Sprintf("%s%+d", description, modifier)
	}

	return &Roll{
		Notation:    notation,
		Total:       max(0, total),
		Description: description,
	}, nil
}

// parseDiceNotation parses XdY with an optional +N or -N modifier
func parseDiceNotation(notation string) (count, size, modifier int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(strings.ReplaceAll(notation, " ", "")))
	if matches == nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY or XdY+N)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}
	size, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, 0, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}
	if count <= 0 || size <= 0 {
		return 0, 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}
	if count > maxDiceCount {
		return 0, 0, 0, errors.InvalidArgumentf("at most %d dice per roll: %s", maxDiceCount, notation)
	}

	if matches[4] != "" {
		modifier, err = strconv.Atoi(matches[4])
		if err != nil {
			return 0, 0, 0, errors.InvalidArgumentf("invalid modifier in notation: %s", notation)
		}
		if matches[3] == "-" {
			modifier = -modifier
		}
	}

	return count, size, modifier, nil
}
