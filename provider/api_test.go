package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/screenroom/screenroom/auth"
	"github.com/screenroom/screenroom/network"
	. "github.com/smartystreets/goconvey/convey"
)

const searchBody = `[
	{"type": "video", "title": "Lo-fi beats", "videoId": "a1", "author": "Desk", "lengthSeconds": 253,
	 "videoThumbnails": [{"url": "https://img/a1.jpg", "quality": "high"}]},
	{"type": "channel", "title": "Desk", "author": "Desk"},
	{"type": "video", "title": "Radio", "videoId": "r1", "author": "Desk", "lengthSeconds": 0, "liveNow": true}
]`

const videoBody = `{
	"title": "Lo-fi beats", "videoId": "a1", "author": "Desk", "lengthSeconds": 253,
	"videoThumbnails": [{"url": "https://img/a1.jpg"}],
	"formatStreams": [
		{"url": "https://cdn/a1-18", "itag": "18", "type": "video/mp4"},
		{"url": "https://cdn/a1-22", "itag": "22", "type": "video/mp4"},
		{"url": "https://cdn/a1-x", "itag": "x"}
	]
}`

func TestAPISource(t *testing.T) {
	Convey("Given a catalog API", t, func() {
		var cookie, clientID, userAgent string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie = r.Header.Get("Cookie")
			clientID = r.Header.Get("X-Client-Id")
			userAgent = r.Header.Get("User-Agent")

			switch r.URL.Path {
			case "/api/v1/search":
				if r.URL.Query().Get("q") != "lofi" || r.URL.Query().Get("type") != "video" {
					http.Error(w, "bad query", http.StatusBadRequest)
					return
				}
				_, _ = w.Write([]byte(searchBody))
			case "/api/v1/videos/a1":
				_, _ = w.Write([]byte(videoBody))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		src, err := NewAPISource(srv.URL+"/", network.Client, auth.Credentials{Cookie: "PREF=1", ClientID: "web"})
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("Search maps the rows", func() {
			results, err := src.Search(ctx, "lofi", 0)
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 3)

			So(results[0].ID, ShouldEqual, "a1")
			So(results[0].Length, ShouldEqual, "00:04:13")
			So(results[0].Thumbnail, ShouldEqual, "https://img/a1.jpg")
			So(results[1].Type, ShouldEqual, "channel")
			So(results[2].Live, ShouldBeTrue)
			So(results[2].Length, ShouldBeEmpty)

			So(cookie, ShouldEqual, "PREF=1")
			So(clientID, ShouldEqual, "web")
			So(userAgent, ShouldNotBeEmpty)
		})

		Convey("Search honours the limit", func() {
			results, err := src.Search(ctx, "lofi", 1)
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 1)
		})

		Convey("Info maps the formats and skips bad tags", func() {
			info, err := src.Info(ctx, "a1")
			So(err, ShouldBeNil)
			So(info.LengthSeconds, ShouldEqual, 253)
			So(info.Formats, ShouldHaveLength, 2)

			format, ok := info.FormatByItag(22)
			So(ok, ShouldBeTrue)
			So(format.URL, ShouldEqual, "https://cdn/a1-22")
		})

		Convey("A missing item is a status error", func() {
			_, err := src.Info(ctx, "missing")

			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.Status, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Non-http URLs are rejected", t, func() {
		_, err := NewAPISource("ftp://catalog", network.Client, auth.Credentials{})
		So(err, ShouldNotBeNil)
	})
}
