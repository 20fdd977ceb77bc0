package model

import internalmodel "github.com/goliatone/go-regform/internal/model"

// FieldKind re-exports the internal FieldKind enumeration.
type FieldKind = internalmodel.FieldKind

const (
	FieldKindString      = internalmodel.FieldKindString
	FieldKindPassword    = internalmodel.FieldKindPassword
	FieldKindEmail       = internalmodel.FieldKindEmail
	FieldKindChoice      = internalmodel.FieldKindChoice
	FieldKindMultiChoice = internalmodel.FieldKindMultiChoice
	FieldKindBoolean     = internalmodel.FieldKindBoolean
	FieldKindDate        = internalmodel.FieldKindDate
)

const (
	ValidationRuleRequired      = internalmodel.ValidationRuleRequired
	ValidationRuleRequiredTrue  = internalmodel.ValidationRuleRequiredTrue
	ValidationRuleMinLength     = internalmodel.ValidationRuleMinLength
	ValidationRulePattern       = internalmodel.ValidationRulePattern
	ValidationRuleEmail         = internalmodel.ValidationRuleEmail
	ValidationRulePassword      = internalmodel.ValidationRulePassword
	ValidationRuleBirthdate     = internalmodel.ValidationRuleBirthdate
	ValidationRuleGitHubProfile = internalmodel.ValidationRuleGitHubProfile
	ValidationRuleOneOf         = internalmodel.ValidationRuleOneOf

	CrossRulePasswordMatch = internalmodel.CrossRulePasswordMatch
)

type ValidationRule = internalmodel.ValidationRule
type CrossRule = internalmodel.CrossRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
