package amqp

import (
	"net"
	"strings"
	"testing"
)

func TestNewClient_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	_, err = NewClient("amqp://guest:guest@"+addr+"/", "reimburse", "reimbursement_forms")
	if err == nil {
		t.Fatal("expected dial error")
	}
	if !strings.Contains(err.Error(), "dial AMQP") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClose_Unconnected(t *testing.T) {
	var c Client
	if err := c.Close(); err != nil {
		t.Errorf("Close() on unconnected client = %v", err)
	}
}
