package filter

import (
	"github.com/nexus-engine/nexus/types"
)

func matchComponentName(components []types.Component, name string) bool {
	for _, c := range components {
		if c.Name() == name {
			return true
		}
	}
	return false
}

func componentNames(components []types.Component) []string {
	names := make([]string, 0, len(components))
	for _, c := range components {
		names = append(names, c.Name())
	}
	return names
}
