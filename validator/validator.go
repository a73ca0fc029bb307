package validator

// Validator is any type that can validate itself via an attached Validate method.
type Validator interface {
	Validate() error
}

// Validate validates type v.
func Validate(v Validator) error {
	return v.Validate()
}
