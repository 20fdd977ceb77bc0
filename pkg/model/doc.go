// Package model defines the typed form definition consumed by the form engine
// and renderers. Builders reside in internal/model but return the types
// defined here. Validation rules expose canonical identifiers (required,
// requiredTrue, minLength, pattern, email, password, birthdate, githubProfile,
// oneOf) with string parameters so definitions can be authored in YAML or JSON
// and snapshotted deterministically. Cross-field rules live on the FormModel
// and name the fields they read through their params.
package model
