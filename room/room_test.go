package room

import (
	"context"
	"testing"

	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/config"
	"github.com/screenroom/screenroom/filesystem"
	"github.com/screenroom/screenroom/gate"
	"github.com/screenroom/screenroom/player"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/source"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	if err := config.Setup(); err != nil {
		panic(err)
	}
}

type stubSource struct{}

func (stubSource) Name() string { return "stub" }
func (stubSource) ID() string   { return "stub" }

func (stubSource) Search(context.Context, string, int) ([]*source.SearchResult, error) {
	return []*source.SearchResult{
		{ID: "a", Title: "A", Length: "1:00", Type: source.TypeVideo},
		{ID: "b", Title: "B", Length: "2:00", Type: source.TypeVideo},
	}, nil
}

func (stubSource) Info(_ context.Context, id string) (*source.StreamInfo, error) {
	return &source.StreamInfo{
		ID:            id,
		Title:         id,
		LengthSeconds: 60,
		Formats:       []source.Format{{Itag: 18, URL: "https://cdn/" + id}},
	}, nil
}

func TestNew(t *testing.T) {
	Convey("Given a room on a stub source", t, func() {
		rec := &player.Recorder{}
		r, err := New(Options{Source: stubSource{}, Renderer: rec})
		So(err, ShouldBeNil)
		defer r.Close()

		ctx := context.Background()
		user := session.NewUser("tester")

		Convey("Commands reach the renderer through the gate", func() {
			So(r.Gate.PlayItem(ctx, user, "a"), ShouldBeNil)

			start, ok := rec.LastStart()
			So(ok, ShouldBeTrue)
			So(start.Item.URI, ShouldEqual, "https://cdn/a")
			So(r.Controller.Snapshot().State, ShouldEqual, session.Playing.String())

			So(r.Gate.Dispatch(ctx, user, gate.Stop), ShouldBeNil)
			So(r.Controller.Snapshot().State, ShouldEqual, session.Stopped.String())
		})

		Convey("The pager answers the next item", func() {
			_, err := r.Pager.Search(ctx, "anything", catalog.Params{})
			So(err, ShouldBeNil)

			next, ok := r.Pager.NextItem("a").Get()
			So(ok, ShouldBeTrue)
			So(next, ShouldEqual, "b")
		})
	})
}
