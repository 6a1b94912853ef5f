package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/screenroom/screenroom/auth"
	"github.com/screenroom/screenroom/constant"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/source"
	"github.com/screenroom/screenroom/util"
)

// APIName is the name of the built-in source.
const APIName = "builtin"

// apiSource talks to a video catalog front end exposing /api/v1/search and /api/v1/videos/{id}.
type apiSource struct {
	base   *url.URL
	client *http.Client
	creds  auth.Credentials
}

// NewAPISource returns the built-in source for the catalog at baseURL.
func NewAPISource(baseURL string, client *http.Client, creds auth.Credentials) (source.Source, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("source url: %w", err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("source url %q: scheme must be http or https", baseURL)
	}

	return &apiSource{base: base, client: client, creds: creds}, nil
}

func (s *apiSource) Name() string {
	return APIName
}

func (s *apiSource) ID() string {
	return APIName
}

type apiThumbnail struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

type apiSearchRow struct {
	Type            string         `json:"type"`
	Title           string         `json:"title"`
	VideoID         string         `json:"videoId"`
	Author          string         `json:"author"`
	LengthSeconds   int            `json:"lengthSeconds"`
	LiveNow         bool           `json:"liveNow"`
	VideoThumbnails []apiThumbnail `json:"videoThumbnails"`
}

type apiFormat struct {
	URL  string `json:"url"`
	Itag string `json:"itag"`
	Type string `json:"type"`
}

type apiVideo struct {
	Title           string         `json:"title"`
	VideoID         string         `json:"videoId"`
	Author          string         `json:"author"`
	LengthSeconds   int            `json:"lengthSeconds"`
	LiveNow         bool           `json:"liveNow"`
	HLSURL          string         `json:"hlsUrl"`
	VideoThumbnails []apiThumbnail `json:"videoThumbnails"`
	FormatStreams   []apiFormat    `json:"formatStreams"`
}

func thumbnailURLs(thumbs []apiThumbnail) []string {
	return lo.FilterMap(thumbs, func(t apiThumbnail, _ int) (string, bool) {
		return t.URL, t.URL != ""
	})
}

func (s *apiSource) Search(ctx context.Context, query string, limit int) ([]*source.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", source.TypeVideo)

	var rows []apiSearchRow
	if err := s.get(ctx, "/api/v1/search", params, &rows); err != nil {
		return nil, err
	}

	results := lo.Map(rows, func(row apiSearchRow, _ int) *source.SearchResult {
		thumbnail, _ := lo.First(thumbnailURLs(row.VideoThumbnails))

		result := &source.SearchResult{
			ID:        row.VideoID,
			Title:     row.Title,
			Author:    row.Author,
			Thumbnail: thumbnail,
			Type:      row.Type,
			Live:      row.LiveNow,
		}

		if !row.LiveNow {
			result.Length = util.SecondsToString(row.LengthSeconds)
		}

		return result
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (s *apiSource) Info(ctx context.Context, id string) (*source.StreamInfo, error) {
	if id == "" {
		return nil, fmt.Errorf("empty item id")
	}

	var video apiVideo
	if err := s.get(ctx, "/api/v1/videos/"+url.PathEscape(id), nil, &video); err != nil {
		return nil, err
	}

	info := &source.StreamInfo{
		ID:            lo.Ternary(video.VideoID != "", video.VideoID, id),
		Title:         video.Title,
		Author:        video.Author,
		Thumbnails:    thumbnailURLs(video.VideoThumbnails),
		LengthSeconds: video.LengthSeconds,
		HLS:           video.HLSURL,
		Live:          video.LiveNow,
	}

	for _, f := range video.FormatStreams {
		itag, err := strconv.Atoi(f.Itag)
		if err != nil {
			log.Debugf("%s: skipping format with itag %q", id, f.Itag)
			continue
		}

		info.Formats = append(info.Formats, source.Format{
			Itag:     itag,
			URL:      f.URL,
			MimeType: f.Type,
		})
	}

	return info, nil
}

// StatusError is a non-2xx answer from the catalog.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

func (s *apiSource) get(ctx context.Context, path string, params url.Values, target any) error {
	u := s.base.JoinPath(path)
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")
	if s.creds.Cookie != "" {
		req.Header.Set("Cookie", s.creds.Cookie)
	}
	if s.creds.ClientID != "" {
		req.Header.Set("X-Client-Id", s.creds.ClientID)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: u.String(), Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", u.Path, err)
	}

	return nil
}
