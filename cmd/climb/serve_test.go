package main

import (
	"testing"

	"github.com/vovakirdan/skyclimb/internal/storage"
)

func TestConnectHint(t *testing.T) {
	tests := []struct {
		addr, want string
	}{
		{":23234", "ssh localhost -p 23234"},
		{":2222", "ssh localhost -p 2222"},
		{"0.0.0.0:2022", "ssh localhost -p 2022"},
		{"[::]:2022", "ssh localhost -p 2022"},
		{"climb.example.com:22", "ssh climb.example.com -p 22"},
		{"127.0.0.1:4000", "ssh 127.0.0.1 -p 4000"},
	}

	for _, tc := range tests {
		if got := connectHint(tc.addr); got != tc.want {
			t.Errorf("connectHint(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}

func TestOpenBackendMemoryDriver(t *testing.T) {
	orig := flagDriver
	flagDriver = driverMemory
	t.Cleanup(func() { flagDriver = orig })

	backend := openBackend()
	defer backend.Close()

	if _, ok := backend.(*storage.Memory); !ok {
		t.Fatalf("openBackend() = %T, expected *storage.Memory", backend)
	}
}
