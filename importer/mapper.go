package importer

import (
	"fmt"
	"strings"

	"kimaijira/config"
	"kimaijira/worklog"
)

// Mapper turns one input row into a worklog record. The boolean result
// distinguishes a matched row from a deliberately skipped one, so callers
// can tell "zero rows" apart from "all rows skipped".
type Mapper interface {
	Name() string
	Map(record Record, sourceFile string) (*worklog.Record, bool, error)
}

func SupportedMapperNames() []string {
	return []string{"kimai"}
}

func MapperByName(name string, cfg config.Config) (Mapper, error) {
	switch normalizeHeader(name) {
	case "kimai":
		return NewKimaiMapper(cfg)
	default:
		return nil, fmt.Errorf("unsupported mapper %q, supported: %s", name, strings.Join(SupportedMapperNames(), ", "))
	}
}
