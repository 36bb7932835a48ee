package state

import (
	"net"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *BoltStore {
	t.Helper()

	store, err := NewBoltStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadRecord(t *testing.T) {
	store := testStore(t)

	rec := &Record{
		Address: net.ParseIP("10.0.0.5"),
		Netmask: net.ParseIP("255.255.255.0"),
		MTU:     1400,
		Routes: []Route{
			{
				Destination: net.IPv4zero,
				Netmask:     net.IPv4zero,
				Gateway:     net.ParseIP("10.0.0.1"),
			},
			{
				Destination: net.ParseIP("192.168.1.0"),
				Netmask:     net.ParseIP("255.255.255.0"),
				Gateway:     net.ParseIP("10.0.0.1"),
			},
		},
	}

	if err := store.Save("eth0", rec); err != nil {
		t.Fatalf("Failed to save record: %v", err)
	}

	got, err := store.Load("eth0")
	if err != nil {
		t.Fatalf("Failed to load record: %v", err)
	}
	if got == nil {
		t.Fatal("Expected a record, got=nil")
	}

	if !got.Address.Equal(rec.Address) {
		t.Errorf("Expected address %v, got=%v", rec.Address, got.Address)
	}
	if !got.Netmask.Equal(rec.Netmask) {
		t.Errorf("Expected netmask %v, got=%v", rec.Netmask, got.Netmask)
	}
	if got.MTU != rec.MTU {
		t.Errorf("Expected MTU %d, got=%d", rec.MTU, got.MTU)
	}
	if len(got.Routes) != len(rec.Routes) {
		t.Fatalf("Expected %d routes, got=%d", len(rec.Routes), len(got.Routes))
	}
	for i := range rec.Routes {
		want, have := rec.Routes[i], got.Routes[i]
		if !have.Destination.Equal(want.Destination) ||
			!have.Netmask.Equal(want.Netmask) ||
			!have.Gateway.Equal(want.Gateway) {
			t.Errorf("Expected route %d to be %v, got=%v", i, want, have)
		}
	}
}

func TestLoadMissingRecord(t *testing.T) {
	store := testStore(t)

	rec, err := store.Load("eth0")
	if err != nil {
		t.Fatalf("Failed to load missing record: %v", err)
	}
	if rec != nil {
		t.Errorf("Expected nil for a missing record, got=%v", rec)
	}
}

func TestDeleteRecord(t *testing.T) {
	store := testStore(t)

	rec := &Record{
		Address: net.ParseIP("10.0.0.5"),
		Netmask: net.ParseIP("255.255.255.0"),
	}
	if err := store.Save("eth0", rec); err != nil {
		t.Fatalf("Failed to save record: %v", err)
	}
	if err := store.Delete("eth0"); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}

	got, err := store.Load("eth0")
	if err != nil {
		t.Fatalf("Failed to load after delete: %v", err)
	}
	if got != nil {
		t.Errorf("Expected record gone after delete, got=%v", got)
	}
}

func TestRecordSerializationTruncated(t *testing.T) {
	if _, err := deserializeRecord([]byte{1, 2, 3}); err == nil {
		t.Error("Expected error for short record data")
	}

	rec := &Record{
		Address: net.ParseIP("10.0.0.5"),
		Netmask: net.ParseIP("255.255.255.0"),
		Routes: []Route{{
			Destination: net.ParseIP("192.168.1.0"),
			Netmask:     net.ParseIP("255.255.255.0"),
			Gateway:     net.ParseIP("10.0.0.1"),
		}},
	}
	data, err := serializeRecord(rec)
	if err != nil {
		t.Fatalf("Failed to serialize record: %v", err)
	}
	if _, err := deserializeRecord(data[:len(data)-4]); err == nil {
		t.Error("Expected error for truncated route list")
	}
}
