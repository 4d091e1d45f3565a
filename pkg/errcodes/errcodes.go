package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	InputShape      failure.ErrorCode = "InputShape"      // candidates document is not a JSON array
	InvalidQuantity failure.ErrorCode = "InvalidQuantity" // negative or non-numeric quantity
	UnknownServer   failure.ErrorCode = "UnknownServer"   // server is not in the published snapshot
	InvalidLimit    failure.ErrorCode = "InvalidLimit"
	EmptyScrape     failure.ErrorCode = "EmptyScrape"
)
