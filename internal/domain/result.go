package domain

// Result is the tagged union every service operation returns.
// Exactly one of Data (on success) or Error/Code (on failure) is meaningful.
type Result[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
	Code    ErrorCode `json:"code,omitempty"`
	Field   string    `json:"field,omitempty"`

	// Details holds the raw cause and is only filled in development mode
	Details string `json:"details,omitempty"`
}

// EntityRef is the payload of create/update/delete results
type EntityRef struct {
	ID string `json:"id"`
}

// OK wraps data in a successful result
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// ErrorPresenter turns an *AppError into caller-facing text
type ErrorPresenter struct {
	Locale      string
	Development bool
}

// Fail builds a failed result from err. Storage text, table and column
// names never reach Error; they only show up in Details when p.Development.
func Fail[T any](p ErrorPresenter, err error) Result[T] {
	appErr := MapStorageError(err, "record")
	res := Result[T]{
		Success: false,
		Code:    appErr.Code,
		Field:   appErr.Field,
		Error:   p.Message(appErr),
	}
	if p.Development && appErr.Err != nil {
		res.Details = appErr.Err.Error()
	}
	return res
}

// Message returns the localized message for appErr. Validation errors keep
// their field message since it is written for the user already.
func (p ErrorPresenter) Message(appErr *AppError) string {
	if appErr.Code == ErrCodeValidation && appErr.Field != "" {
		return appErr.Message
	}
	catalog, ok := messages[p.Locale]
	if !ok {
		catalog = messages["en"]
	}
	if msg, ok := catalog[appErr.Code]; ok {
		return msg
	}
	return catalog[ErrCodeDatabase]
}

var messages = map[string]map[ErrorCode]string{
	"en": {
		ErrCodeUnauthorized: "You must be signed in.",
		ErrCodeForbidden:    "You do not have permission to perform this action.",
		ErrCodeNotFound:     "The requested record was not found.",
		ErrCodeValidation:   "The submitted data is invalid.",
		ErrCodeConflict:     "The record conflicts with existing data.",
		ErrCodeDatabase:     "Something went wrong. Please try again.",
	},
	"nb": {
		ErrCodeUnauthorized: "Du må være innlogget.",
		ErrCodeForbidden:    "Du har ikke tilgang til å utføre denne handlingen.",
		ErrCodeNotFound:     "Fant ikke det forespurte elementet.",
		ErrCodeValidation:   "Ugyldige data.",
		ErrCodeConflict:     "Elementet er i konflikt med eksisterende data.",
		ErrCodeDatabase:     "Noe gikk galt. Vennligst prøv igjen.",
	},
}
