package enums

// string enums accepted in the config file

import (
	"github.com/orsinium-labs/enum"
)

type ContainerKind enum.Member[string]

var (
	ck = enum.NewBuilder[string, ContainerKind]()

	ContainerHeap  = ck.Add(ContainerKind{"heap"})
	ContainerSList = ck.Add(ContainerKind{"slist"})
	ContainerDList = ck.Add(ContainerKind{"dlist"})

	ContainerKinds = ck.Enum()
)

type LoggingLevel enum.Member[string]

var (
	ll = enum.NewBuilder[string, LoggingLevel]()

	LoggingLevelDebug = ll.Add(LoggingLevel{"debug"})
	LoggingLevelInfo  = ll.Add(LoggingLevel{"info"})
	LoggingLevelWarn  = ll.Add(LoggingLevel{"warn"})
	LoggingLevelError = ll.Add(LoggingLevel{"error"})

	LoggingLevels = ll.Enum()
)
