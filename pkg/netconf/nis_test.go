package netconf

import (
	"net"
	"testing"
)

func TestNISDomainWithServers(t *testing.T) {
	lease := &Lease{
		NISDomain: "lab",
		NISServers: []net.IP{
			net.ParseIP("10.0.0.20").To4(),
			net.ParseIP("10.0.0.21").To4(),
		},
	}

	want := "# Generated by dhclientd for interface eth0\n" +
		"domain lab server 10.0.0.20\n" +
		"domain lab server 10.0.0.21\n"
	if got := string(renderNIS("eth0", lease)); got != want {
		t.Errorf("Expected %q, got=%q", want, got)
	}
}

func TestNISDomainBroadcast(t *testing.T) {
	lease := &Lease{NISDomain: "lab"}

	want := "# Generated by dhclientd for interface eth0\n" +
		"domain lab broadcast\n"
	if got := string(renderNIS("eth0", lease)); got != want {
		t.Errorf("Expected %q, got=%q", want, got)
	}
}

func TestNISServersWithoutDomain(t *testing.T) {
	lease := &Lease{
		NISServers: []net.IP{net.ParseIP("10.0.0.20").To4()},
	}

	want := "# Generated by dhclientd for interface eth0\n" +
		"ypserver 10.0.0.20\n"
	if got := string(renderNIS("eth0", lease)); got != want {
		t.Errorf("Expected %q, got=%q", want, got)
	}
}
