package netconf

import (
	"errors"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// NetOps is the kernel mutation surface the engine drives. The production
// implementation speaks rtnetlink; tests substitute a recorder.
type NetOps interface {
	AddAddress(ifname string, addr, netmask, broadcast net.IP) error
	DelAddress(ifname string, addr, netmask net.IP) error
	AddRoute(ifname string, dest, netmask, gateway net.IP, metric int) error
	DelRoute(ifname string, dest, netmask, gateway net.IP, metric int) error
	SetMTU(ifname string, mtu int) error
}

// IsExist reports whether err is the kernel saying the requested state is
// already applied, which the engine treats as success.
func IsExist(err error) bool {
	return errors.Is(err, unix.EEXIST) || errors.Is(err, os.ErrExist)
}
