package loops

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDedicatedIPs_List(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`["192.0.2.10","192.0.2.11"]`))
	})

	ips, err := client.DedicatedIPs().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotPath != "/dedicated-sending-ips" {
		t.Errorf("path = %q, want /dedicated-sending-ips", gotPath)
	}
	if diff := cmp.Diff([]string{"192.0.2.10", "192.0.2.11"}, ips); diff != "" {
		t.Errorf("ips mismatch (-want +got):\n%s", diff)
	}
}

func TestDedicatedIPs_List_None(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	ips, err := client.DedicatedIPs().List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(ips) != 0 {
		t.Errorf("len(ips) = %d, want 0", len(ips))
	}
}
