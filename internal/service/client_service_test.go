package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/playmo/smartdns-api/internal/gateway"
	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/notify"
	"github.com/playmo/smartdns-api/internal/repository"
	"github.com/playmo/smartdns-api/internal/store"
)

type fakeGateway struct {
	url   string
	err   error
	calls []string
}

func (g *fakeGateway) Configured() bool { return g.url != "" }

func (g *fakeGateway) Whitelist(_ context.Context, ip, proto string) error {
	g.calls = append(g.calls, ip+"/"+proto)
	if !g.Configured() {
		return gateway.ErrNotConfigured
	}
	return g.err
}

type eventLog struct {
	types []string
}

func (e *eventLog) Publish(ev models.Event) { e.types = append(e.types, ev.Type) }

type fixture struct {
	store     *store.MemoryStore
	clients   repository.ClientRepository
	ips       repository.IPRepository
	whitelist repository.WhitelistRepository
	gw        *fakeGateway
	events    *eventLog
}

func newFixture() *fixture {
	s := store.NewMemoryStore()
	return &fixture{
		store:     s,
		clients:   repository.NewClientRepository(s),
		ips:       repository.NewIPRepository(s),
		whitelist: repository.NewWhitelistRepository(s),
		gw:        &fakeGateway{url: "http://gateway.test"},
		events:    &eventLog{},
	}
}

func (f *fixture) clientService() ClientService {
	return NewClientService(f.clients, f.ips, f.gw, f.events)
}

func TestClientService_AddIP_MergesAndAppends(t *testing.T) {
	f := newFixture()
	svc := f.clientService()
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, "acme", "ops@acme.test", "", nil)
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	if client.Status != "active" {
		t.Errorf("Status = %q, want active", client.Status)
	}

	first, err := svc.AddIP(ctx, client.ID, "203.0.113.7", "")
	if err != nil {
		t.Fatalf("AddIP() error = %v", err)
	}
	second, err := svc.AddIP(ctx, client.ID, "203.0.113.7", "ddns")
	if err != nil {
		t.Fatalf("AddIP() error = %v", err)
	}
	if first.Replaced || !second.Replaced {
		t.Errorf("Replaced = %v, %v; want false, true", first.Replaced, second.Replaced)
	}
	if !first.Whitelisted || !second.Whitelisted {
		t.Errorf("Whitelisted = %v, %v; want true, true", first.Whitelisted, second.Whitelisted)
	}

	got, err := svc.GetClient(ctx, client.ID)
	if err != nil {
		t.Fatalf("GetClient() error = %v", err)
	}
	if len(got.IPAddresses) != 1 {
		t.Fatalf("embedded entries = %d, want 1", len(got.IPAddresses))
	}
	if got.IPAddresses[0].Source != "ddns" {
		t.Errorf("embedded source = %q, want ddns", got.IPAddresses[0].Source)
	}

	docs, err := f.ips.GetIPsByAddress(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("GetIPsByAddress() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("ip documents = %d, want 2", len(docs))
	}
	for _, d := range docs {
		if !d.IsWhitelisted || d.WhitelistedAt == nil {
			t.Errorf("document %s not marked whitelisted: %+v", d.ID, d)
		}
	}

	if diff := cmp.Diff([]string{"203.0.113.7/", "203.0.113.7/"}, f.gw.calls); diff != "" {
		t.Errorf("gateway calls mismatch (-want +got):\n%s", diff)
	}
	wantEvents := []string{"client.created", "ip.added", "ip.whitelisted", "ip.added", "ip.whitelisted"}
	if diff := cmp.Diff(wantEvents, f.events.types); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestClientService_AddIP_GatewayFailure(t *testing.T) {
	f := newFixture()
	f.gw.err = errors.New("connection refused")
	svc := f.clientService()
	ctx := context.Background()

	client, err := svc.CreateClient(ctx, "acme", "ops@acme.test", "", nil)
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}

	res, err := svc.AddIP(ctx, client.ID, "2001:db8::1", "app")
	if err != nil {
		t.Fatalf("AddIP() error = %v", err)
	}
	if res.Whitelisted {
		t.Error("Whitelisted = true, want false")
	}

	n, err := f.ips.CountWhitelisted(ctx)
	if err != nil {
		t.Fatalf("CountWhitelisted() error = %v", err)
	}
	total, _ := f.ips.CountIPs(ctx)
	if n != 0 || total != 1 {
		t.Errorf("whitelisted/total = %d/%d, want 0/1", n, total)
	}
}

func TestClientService_AddIP_NoGateway(t *testing.T) {
	f := newFixture()
	f.gw.url = ""
	svc := f.clientService()
	ctx := context.Background()

	client, _ := svc.CreateClient(ctx, "acme", "ops@acme.test", "", nil)
	res, err := svc.AddIP(ctx, client.ID, "203.0.113.9", "")
	if err != nil {
		t.Fatalf("AddIP() error = %v", err)
	}
	if res.Whitelisted {
		t.Error("Whitelisted = true without gateway")
	}
	if len(f.gw.calls) != 0 {
		t.Errorf("gateway called %d times, want 0", len(f.gw.calls))
	}
}

func TestClientService_AddIP_UnknownClient(t *testing.T) {
	f := newFixture()
	svc := f.clientService()

	_, err := svc.AddIP(context.Background(), "missing", "203.0.113.7", "")
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("AddIP() error = %v, want ErrClientNotFound", err)
	}
	if n, _ := f.ips.CountIPs(context.Background()); n != 0 {
		t.Errorf("ip documents = %d, want 0", n)
	}
}

func TestWhitelistService(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	svc := NewWhitelistService(f.whitelist, f.ips, f.gw, notify.Discard)

	for _, ip := range []string{"203.0.113.7", "203.0.113.7", "198.51.100.4"} {
		if err := f.ips.SaveIP(ctx, &models.IPAddress{IPAddress: ip, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("SaveIP() error = %v", err)
		}
	}

	entry, err := svc.WhitelistIP(ctx, WhitelistRequest{IP: "203.0.113.7", ClientID: "c1"})
	if err != nil {
		t.Fatalf("WhitelistIP() error = %v", err)
	}
	if entry.Protocol != "udp" || entry.WhitelistedBy != "system" {
		t.Errorf("defaults = %q/%q, want udp/system", entry.Protocol, entry.WhitelistedBy)
	}
	if diff := cmp.Diff([]string{"203.0.113.7/udp"}, f.gw.calls); diff != "" {
		t.Errorf("gateway calls mismatch (-want +got):\n%s", diff)
	}

	whitelisted, _ := f.ips.CountWhitelisted(ctx)
	if whitelisted != 2 {
		t.Errorf("whitelisted documents = %d, want 2", whitelisted)
	}
	entries, _ := f.whitelist.CountEntries(ctx)
	if entries != 1 {
		t.Errorf("whitelist entries = %d, want 1", entries)
	}
}

func TestWhitelistService_GatewayRejects(t *testing.T) {
	f := newFixture()
	f.gw.err = gateway.ErrRejected
	svc := NewWhitelistService(f.whitelist, f.ips, f.gw, notify.Discard)

	_, err := svc.WhitelistIP(context.Background(), WhitelistRequest{IP: "203.0.113.7"})
	if !errors.Is(err, gateway.ErrRejected) {
		t.Fatalf("WhitelistIP() error = %v, want ErrRejected", err)
	}
	if n, _ := f.whitelist.CountEntries(context.Background()); n != 0 {
		t.Errorf("whitelist entries = %d, want 0", n)
	}
}

type failingLogRepo struct{ calls int }

func (r *failingLogRepo) SaveLog(context.Context, *models.LogEntry) error {
	r.calls++
	return errors.New("disk full")
}

func TestLogService_SwallowsFailures(t *testing.T) {
	repo := &failingLogRepo{}
	svc := NewLogService(repo, nil)

	svc.LogAPICall(models.LogEntry{Endpoint: "/api/clients", Method: "GET", Status: 200})
	svc.Wait()

	if repo.calls != 1 {
		t.Errorf("SaveLog calls = %d, want 1", repo.calls)
	}
}
