package validator

import (
	"log"
	"strings"

	"winelink/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("notblank", validateNotBlank)
	mustRegister("is-wine-color", validateWineColor)
	mustRegister("is-sugar-level", validateSugarLevel)
	mustRegister("is-yes-no", validateYesNo)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Empty values pass the enum rules; pair them with required when needed.

func validateWineColor(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.WineColor(value).Valid()
}

func validateSugarLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.SugarLevel(value).Valid()
}

func validateYesNo(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", models.FlagYes, models.FlagNo:
		return true
	}
	return false
}

func colorValues() []string {
	out := make([]string, 0, len(models.WineColors))
	for _, c := range models.WineColors {
		out = append(out, string(c))
	}
	return out
}

func sugarValues() []string {
	out := make([]string, 0, len(models.SugarLevels))
	for _, s := range models.SugarLevels {
		out = append(out, string(s))
	}
	return out
}
