package config

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultPort is the port implied by a bind string with no port part.
const DefaultPort = 8000

// Address is the structured form of a bind string. Network is "tcp" for
// HOST and HOST:PORT forms and "unix" for unix:PATH.
type Address struct {
	Network string
	Host    string
	Port    int
	Path    string
}

// String renders the address back into bind-string form.
func (a Address) String() string {
	if a.Network == "unix" {
		return "unix:" + a.Path
	}
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// ParseAddress parses a bind string. Recognized forms are HOST,
// HOST:PORT, and unix:PATH; a bare HOST implies DefaultPort.
func ParseAddress(bind string) (Address, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return Address{}, fmt.Errorf("empty bind address")
	}

	if path, ok := strings.CutPrefix(bind, "unix:"); ok {
		if path == "" {
			return Address{}, fmt.Errorf("empty unix socket path in %q", bind)
		}
		return Address{Network: "unix", Path: path}, nil
	}

	host, portStr, found := strings.Cut(bind, ":")
	if !found {
		return Address{Network: "tcp", Host: host, Port: DefaultPort}, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return Address{}, fmt.Errorf("invalid port in bind address %q", bind)
	}
	return Address{Network: "tcp", Host: host, Port: port}, nil
}
