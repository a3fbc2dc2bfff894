package diag

import (
	"cutr/internal/source"
)

type Note struct {
	Where source.Location
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Location
	Notes    []Note
}
