package netconf

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestResolvDirectWrite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "resolv.conf")
	fs := &fakeSpawn{}
	e := NewEngine(Options{DNS: true}, Paths{ResolvFile: file}, &fakeNet{}, fs)

	lease := &Lease{
		Address:   net.ParseIP("10.0.0.5").To4(),
		DNSDomain: "example.org",
		DNSServers: []net.IP{
			net.ParseIP("10.0.0.53").To4(),
			net.ParseIP("10.0.0.54").To4(),
		},
	}

	e.writeResolv("eth0", lease)

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Failed to read resolver file: %v", err)
	}

	want := "# Generated by dhclientd for interface eth0\n" +
		"search example.org\n" +
		"nameserver 10.0.0.53\n" +
		"nameserver 10.0.0.54\n"
	if string(data) != want {
		t.Errorf("Expected resolver content %q, got=%q", want, string(data))
	}
	if len(fs.calls) != 0 {
		t.Errorf("Expected no helper invocation without resolvconf, got=%v", fs.calls)
	}
}

func TestResolvSearchListPreferredOverDomain(t *testing.T) {
	lease := &Lease{
		DNSDomain:  "example.org",
		DNSSearch:  "a.example.org b.example.org",
		DNSServers: []net.IP{net.ParseIP("10.0.0.53").To4()},
	}

	content := string(renderResolv("eth0", lease))
	want := "# Generated by dhclientd for interface eth0\n" +
		"search a.example.org b.example.org\n" +
		"nameserver 10.0.0.53\n"
	if content != want {
		t.Errorf("Expected search list to win, got=%q", content)
	}
}

func TestResolvconfHelperReceivesContent(t *testing.T) {
	helper := filepath.Join(t.TempDir(), "resolvconf")
	if err := os.WriteFile(helper, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to create helper: %v", err)
	}

	fs := &fakeSpawn{}
	e := NewEngine(Options{DNS: true}, Paths{Resolvconf: helper}, &fakeNet{}, fs)

	e.writeResolv("eth0", &Lease{DNSServers: []net.IP{net.ParseIP("10.0.0.53").To4()}})

	if len(fs.calls) != 1 {
		t.Fatalf("Expected one helper invocation, got=%v", fs.calls)
	}
	call := fs.calls[0]
	if call[0] != helper || len(call) != 3 || call[1] != "-a" || call[2] != "eth0" {
		t.Errorf("Expected helper called with -a eth0, got=%v", call)
	}
}

func TestRestoreResolvWithoutHelperIsNoop(t *testing.T) {
	fs := &fakeSpawn{}
	e := NewEngine(Options{DNS: true}, Paths{ResolvFile: "/tmp/resolv.conf"}, &fakeNet{}, fs)

	e.restoreResolv("eth0")

	if len(fs.calls) != 0 {
		t.Errorf("Expected no teardown in direct-file mode, got=%v", fs.calls)
	}
}

func TestRestoreResolvWithHelper(t *testing.T) {
	helper := filepath.Join(t.TempDir(), "resolvconf")
	if err := os.WriteFile(helper, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to create helper: %v", err)
	}

	fs := &fakeSpawn{}
	e := NewEngine(Options{DNS: true}, Paths{Resolvconf: helper}, &fakeNet{}, fs)

	e.restoreResolv("eth0")

	if len(fs.calls) != 1 || fs.calls[0][1] != "-d" || fs.calls[0][2] != "eth0" {
		t.Errorf("Expected helper called with -d eth0, got=%v", fs.calls)
	}
}
