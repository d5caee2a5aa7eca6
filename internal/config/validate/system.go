package validate

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
)

// System capabilities used by the user/group validators. They are
// package-level vars so tests can substitute them without touching the
// real user database.
var (
	// CurrentUID returns the effective uid of the process.
	CurrentUID = os.Geteuid

	// CurrentGID returns the effective gid of the process.
	CurrentGID = os.Getegid

	// LookupUser resolves a user name to its uid.
	LookupUser = lookupUser

	// LookupGroup resolves a group name to its gid.
	LookupGroup = lookupGroup
)

func lookupUser(name string) (int, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return 0, err
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, fmt.Errorf("non-numeric uid for %s: %q", name, u.Uid)
	}
	return uid, nil
}

func lookupGroup(name string) (int, error) {
	g, err := user.LookupGroup(name)
	if err != nil {
		return 0, err
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, fmt.Errorf("non-numeric gid for %s: %q", name, g.Gid)
	}
	return gid, nil
}
