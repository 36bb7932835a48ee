package netconf

import "golang.org/x/sys/unix"

func setHostname(name string) error {
	return unix.Sethostname([]byte(name))
}

func setDomainname(name string) error {
	return unix.Setdomainname([]byte(name))
}
