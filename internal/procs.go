package internal

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/go-ps"
)

// RunningServers returns the processes whose executable starts with one of
// names, e.g. a JLinkGDBServer or openocd holding the debug adapter.
func RunningServers(names []string) ([]ps.Process, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, errors.Wrap(err, "list processes")
	}

	var r []ps.Process
	for _, p := range procs {
		for _, name := range names {
			if name != "" && strings.HasPrefix(p.Executable(), name) {
				r = append(r, p)
				break
			}
		}
	}
	return r, nil
}
