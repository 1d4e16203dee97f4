package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldError("max_hp", "must be at least 1")
	ve.AddFieldErrorf("level", "must be between %d and %d", 1, 9)

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal(
		"validation failed: level: must be between 1 and 9; max_hp: must be at least 1; name: is required",
		ve.Error(),
	)

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestEmptyValidationError() {
	ve := errors.NewValidationError()
	s.Assert().False(ve.HasErrors())
	s.Assert().Equal("validation failed", ve.Error())
	s.Assert().Nil(ve.ToError())
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("level", "must be between %d and %d", 1, 9).
		RequiredField("recovers_on")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	err := vb.Build()
	s.Assert().Nil(err)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Rage", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  Ki  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateMaxLength() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMaxLength("name", "this is a very long character name", 20, vb)
	errors.ValidateMaxLength("spell", "Bless", 20, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["name"][0], "must be no more than 20 characters")
	s.Assert().NotContains(validationErrors, "spell")
}

func (s *ValidationTestSuite) TestValidateMinAndRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMin("max_hp", 0, 1, vb)
	errors.ValidateMin("max", 3, 0, vb)
	errors.ValidateRange("level", 12, 1, 9, vb)
	errors.ValidateRange("other_level", 4, 1, 9, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["max_hp"][0], "must be at least 1")
	s.Assert().Contains(validationErrors["level"][0], "must be between 1 and 9")
	s.Assert().NotContains(validationErrors, "max")
	s.Assert().NotContains(validationErrors, "other_level")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowed := []string{"short", "long", "none"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("recovers_on", "dawn", allowed, vb)
	errors.ValidateEnum("other", "long", allowed, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["recovers_on"][0], "must be one of: short, long, none")
	s.Assert().NotContains(validationErrors, "other")
}
