package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/gate"
	"github.com/screenroom/screenroom/resolver"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/source"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeResolver map[string]*source.Item

func (f fakeResolver) Resolve(_ context.Context, id string) (*source.Item, error) {
	if item, ok := f[id]; ok {
		return item, nil
	}
	if id == "boom" {
		return nil, errors.New("boom")
	}
	return nil, &resolver.ResolutionError{ID: id, Err: resolver.ErrNoPlayableFormat}
}

type dispatched struct {
	user session.User
	cmd  gate.Command
	item string
}

type fakeGate struct {
	calls []dispatched
	err   error
}

func (g *fakeGate) Dispatch(_ context.Context, user session.User, cmd gate.Command) error {
	g.calls = append(g.calls, dispatched{user: user, cmd: cmd})
	return g.err
}

func (g *fakeGate) PlayItem(_ context.Context, user session.User, id string) error {
	g.calls = append(g.calls, dispatched{user: user, cmd: gate.Play, item: id})
	return g.err
}

type fakeSession struct{}

func (fakeSession) Snapshot() session.Snapshot {
	return session.Snapshot{SessionID: "s1", State: "playing", Volume: 0.5}
}

type fakeSearcher struct{}

func (fakeSearcher) Search(ctx context.Context, query string, limit int) ([]*source.SearchResult, error) {
	return []*source.SearchResult{
		{ID: "a", Title: "A", Length: "1:00", Type: source.TypeVideo},
		{ID: "b", Title: "B", Length: "2:00", Type: source.TypeVideo},
		{ID: "c", Title: "C", Length: "3:00", Type: source.TypeVideo},
	}, nil
}

func do(h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	Convey("Given a server", t, func() {
		g := &fakeGate{}
		srv := New(Deps{
			Resolver: fakeResolver{"a": {ID: "a", URI: "https://cdn/a"}},
			Gate:     g,
			Session:  fakeSession{},
			Catalog:  catalog.NewPager(fakeSearcher{}, nil, catalog.WithPageSize(2)),
		})
		h := srv.Handler()

		Convey("/watch redirects to the stream", func() {
			rec := do(h, http.MethodGet, "/watch?v=a", nil)
			So(rec.Code, ShouldEqual, http.StatusFound)
			So(rec.Header().Get("Location"), ShouldEqual, "https://cdn/a")
		})

		Convey("/watch without v is a bad request", func() {
			So(do(h, http.MethodGet, "/watch", nil).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("/watch of an unplayable item is a bad gateway", func() {
			So(do(h, http.MethodGet, "/watch?v=zzz", nil).Code, ShouldEqual, http.StatusBadGateway)
			So(do(h, http.MethodGet, "/watch?v=boom", nil).Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("Commands go through the gate with the caller's identity", func() {
			rec := do(h, http.MethodPost, "/commands/fast-forward", http.Header{HeaderUserID: {"u1"}})
			So(rec.Code, ShouldEqual, http.StatusNoContent)
			So(g.calls, ShouldHaveLength, 1)
			So(g.calls[0].cmd, ShouldEqual, gate.FastForward)
			So(g.calls[0].user.ID, ShouldEqual, "u1")
		})

		Convey("Anonymous callers get a generated id", func() {
			do(h, http.MethodPost, "/commands/stop", nil)
			So(g.calls[0].user.ID, ShouldNotBeEmpty)
		})

		Convey("Play with v plays that item", func() {
			do(h, http.MethodPost, "/commands/play?v=b", nil)
			So(g.calls[0].item, ShouldEqual, "b")
		})

		Convey("Unknown commands are not found", func() {
			So(do(h, http.MethodPost, "/commands/eject", nil).Code, ShouldEqual, http.StatusNotFound)
			So(g.calls, ShouldBeEmpty)
		})

		Convey("A busy gate is a conflict", func() {
			g.err = gate.ErrBusy
			So(do(h, http.MethodPost, "/commands/play", nil).Code, ShouldEqual, http.StatusConflict)
		})

		Convey("A failed command is an internal error", func() {
			g.err = errors.New("renderer failed")
			So(do(h, http.MethodPost, "/commands/play", nil).Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("Commands only accept POST", func() {
			So(do(h, http.MethodGet, "/commands/play", nil).Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("/session returns the snapshot", func() {
			rec := do(h, http.MethodGet, "/session", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var snap session.Snapshot
			So(json.NewDecoder(rec.Body).Decode(&snap), ShouldBeNil)
			So(snap.SessionID, ShouldEqual, "s1")
		})

		Convey("/catalog returns a page", func() {
			rec := do(h, http.MethodGet, "/catalog?q=lofi&start=2", nil)
			So(rec.Code, ShouldEqual, http.StatusOK)

			var page catalog.Page
			So(json.NewDecoder(rec.Body).Decode(&page), ShouldBeNil)
			So(page.TotalCount, ShouldEqual, 3)
			So(page.Items, ShouldHaveLength, 1)
			So(page.Items[0].ID, ShouldEqual, "c")
		})

		Convey("/catalog rejects a bad start", func() {
			So(do(h, http.MethodGet, "/catalog?q=lofi&start=x", nil).Code, ShouldEqual, http.StatusBadRequest)
		})
	})

	Convey("Routes without a collaborator are absent", t, func() {
		h := New(Deps{}).Handler()
		So(do(h, http.MethodGet, "/session", nil).Code, ShouldEqual, http.StatusNotFound)
		So(do(h, http.MethodGet, "/health", nil).Code, ShouldEqual, http.StatusOK)
	})
}

func TestServe(t *testing.T) {
	Convey("Given a running server", t, func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		So(err, ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- New(Deps{Session: fakeSession{}}).Serve(ctx, ln)
		}()

		Convey("It answers and shuts down on cancel", func() {
			resp, err := http.Get("http://" + ln.Addr().String() + "/session")
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"), ShouldBeTrue)
			resp.Body.Close()

			cancel()
			select {
			case err := <-done:
				So(err, ShouldBeNil)
			case <-time.After(5 * time.Second):
				So("server did not stop", ShouldBeEmpty)
			}
		})
	})
}
