package proxy

import "fmt"

// AttributeError reports that a name exists neither among a proxy's own
// attributes nor on the held instance.
type AttributeError struct {
	Name   string
	Target string
}

func (e AttributeError) Error() string {
	return fmt.Sprintf("proxy: %s has no attribute %q", e.Target, e.Name)
}
