package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/notify"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

var fixedNow = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestLink(t *testing.T) {
	cases := []struct {
		origin, id, want string
	}{
		{"https://forms.example.com", "abc", "https://forms.example.com/form/abc"},
		{"https://forms.example.com/", "abc", "https://forms.example.com/form/abc"},
		{"http://localhost:3000", "a b/c", "http://localhost:3000/form/a%20b%2Fc"},
	}
	for _, tc := range cases {
		got, err := Link(tc.origin, tc.id)
		if err != nil {
			t.Fatalf("Link(%q, %q): %v", tc.origin, tc.id, err)
		}
		if got != tc.want {
			t.Fatalf("Link(%q, %q): want %q, got %q", tc.origin, tc.id, tc.want, got)
		}
	}

	if _, err := Link("", "abc"); err == nil {
		t.Fatalf("expected error for empty origin")
	}
	if _, err := Link("https://x", "  "); err == nil {
		t.Fatalf("expected error for empty form id")
	}
}

func newService(t *testing.T, store Store) (*Service, *testsupport.NoticeRecorder) {
	t.Helper()
	rec := &testsupport.NoticeRecorder{}
	svc, err := NewService(store, "https://forms.example.com", WithNotifier(rec), WithClock(clock))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, rec
}

func TestService_PublishFlow(t *testing.T) {
	ctx := context.Background()
	svc, rec := newService(t, NewMemoryStore())

	state, err := svc.State(ctx, "f1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Public {
		t.Fatalf("forms should start private")
	}

	if _, err := svc.ShareLink(ctx, "f1"); !errors.Is(err, ErrNotPublic) {
		t.Fatalf("expected ErrNotPublic, got %v", err)
	}

	state, err = svc.Publish(ctx, "f1")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if diff := cmp.Diff(State{FormID: "f1", Public: true, UpdatedAt: fixedNow}, state); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	link, err := svc.ShareLink(ctx, "f1")
	if err != nil {
		t.Fatalf("share link: %v", err)
	}
	if link != "https://forms.example.com/form/f1" {
		t.Fatalf("unexpected link %q", link)
	}

	state, err = svc.Toggle(ctx, "f1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if state.Public {
		t.Fatalf("toggle should make the form private")
	}

	want := []notify.Notice{NoticePublished, NoticeLinkCopied, NoticeUnpublished}
	if diff := cmp.Diff(want, rec.Notices()); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestService_LinkIgnoresVisibility(t *testing.T) {
	svc, rec := newService(t, NewMemoryStore())
	link, err := svc.Link("f9")
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if link != "https://forms.example.com/form/f9" {
		t.Fatalf("unexpected link %q", link)
	}
	if len(rec.Notices()) != 0 {
		t.Fatalf("Link should not notify")
	}
}

func TestService_Validation(t *testing.T) {
	if _, err := NewService(nil, "https://x"); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if _, err := NewService(NewMemoryStore(), " "); err == nil {
		t.Fatalf("expected error for empty origin")
	}
	svc, _ := newService(t, NewMemoryStore())
	if _, err := svc.Publish(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty form id")
	}
}

func setupRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("new redis store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := setupRedis(t)

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, err := store.Get(ctx, "f1"); !errors.Is(err, ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}

	if _, err := store.SetPublic(ctx, "f1", true, fixedNow); err != nil {
		t.Fatalf("set public: %v", err)
	}
	if !mr.Exists("share:f1") {
		t.Fatalf("expected share:f1 key in redis")
	}

	got, err := store.Get(ctx, "f1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(State{FormID: "f1", Public: true, UpdatedAt: fixedNow}, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := setupRedis(t)
	if err := mr.Set("share:bad", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.Get(context.Background(), "bad"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestRedisStore_WithService(t *testing.T) {
	ctx := context.Background()
	store, _ := setupRedis(t)
	svc, _ := newService(t, store)

	if _, err := svc.Publish(ctx, "shared"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	link, err := svc.ShareLink(ctx, "shared")
	if err != nil {
		t.Fatalf("share link: %v", err)
	}
	if link != "https://forms.example.com/form/shared" {
		t.Fatalf("unexpected link %q", link)
	}
}

func TestNewRedisStore_BadURL(t *testing.T) {
	if _, err := NewRedisStore("not a url"); err == nil {
		t.Fatalf("expected parse error")
	}
}
