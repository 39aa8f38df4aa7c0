package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/SAP-F-2025/participation-service/internal/errors"
	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance shared by handlers and services
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates s and reports field failures as apperrors.ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	err := v.ValidateStruct(s)
	if err == nil {
		return nil
	}
	if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
		return errs
	}
	return err
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exercise_type", validateExerciseType)
	validate.RegisterValidation("assessment_type", validateAssessmentType)
	validate.RegisterValidation("test_name", validateTestName)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateExerciseType(fl validator.FieldLevel) bool {
	validTypes := []models.ExerciseType{
		models.ExerciseProgramming,
		models.ExerciseQuiz,
		models.ExerciseModeling,
		models.ExerciseText,
		models.ExerciseFileUpload,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateAssessmentType(fl validator.FieldLevel) bool {
	validTypes := []models.AssessmentType{
		models.AssessmentAutomatic,
		models.AssessmentSemiAutomatic,
		models.AssessmentManual,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

// Test names are matched verbatim against feedback text.
func validateTestName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return strings.TrimSpace(value) != "" && !strings.ContainsAny(value, "\r\n")
}
