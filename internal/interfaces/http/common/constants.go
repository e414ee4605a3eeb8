package common

const (
	// MaxContactNameRunes limits the contact form name field.
	MaxContactNameRunes = 100
	// MaxContactMessageRunes limits the contact form message body.
	MaxContactMessageRunes = 2000
	// MaxRequestBody limits JSON request bodies for contact/admin endpoints.
	MaxRequestBody = 1 << 20
)
