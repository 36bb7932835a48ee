//go:build !linux

package netconf

import "errors"

func setHostname(string) error {
	return errors.New("sethostname not supported on this platform")
}

func setDomainname(string) error {
	return errors.New("setdomainname not supported on this platform")
}
