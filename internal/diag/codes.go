package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Конфигурация запуска
	CfgInfo          Code = 1000
	CfgNoMode        Code = 1001
	CfgMultipleModes Code = 1002
	CfgBadDelimiter  Code = 1003
	CfgLoadFailed    Code = 1004
	CfgBadValue      Code = 1005

	// Список позиций
	ListInfo         Code = 2000
	ListEmpty        Code = 2001
	ListInvalidToken Code = 2002

	// Ввод-вывод
	IOInfo        Code = 4000
	IOOpenFailed  Code = 4001
	IOReadFailed  Code = 4002
	IOWriteFailed Code = 4003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:      "Unknown error",
		CfgInfo:          "Configuration information",
		CfgNoMode:        "No selection list given",
		CfgMultipleModes: "More than one selection list given",
		CfgBadDelimiter:  "Delimiter must be a single character",
		CfgLoadFailed:    "Failed to load configuration file",
		CfgBadValue:      "Invalid configuration value",
		ListInfo:         "List information",
		ListEmpty:        "Empty selection list",
		ListInvalidToken: "Invalid selection list value",
		IOInfo:           "I/O information",
		IOOpenFailed:     "Failed to open input",
		IOReadFailed:     "Failed to read input",
		IOWriteFailed:    "Failed to write output",
	}
)

func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LST%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
