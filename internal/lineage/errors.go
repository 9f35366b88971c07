package lineage

import "fmt"

// UnknownCompanyError is returned when a query names a company that is not
// part of the graph or aggregate being queried.
type UnknownCompanyError struct {
	Name string
}

func (e *UnknownCompanyError) Error() string {
	return fmt.Sprintf("unknown company %q", e.Name)
}
