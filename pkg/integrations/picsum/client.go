package picsum

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/httputil"
	"github.com/matzehuels/photogrid/pkg/integrations"
	"github.com/matzehuels/photogrid/pkg/photo"
)

// DefaultBaseURL is the public Lorem Picsum API.
const DefaultBaseURL = "https://picsum.photos"

const listPath = "v2/list"

// Options configures a Client. The zero value talks to [DefaultBaseURL]
// with a single attempt per request and no logging.
type Options struct {
	BaseURL string          // Service root; empty means DefaultBaseURL
	Retry   httputil.Policy // Transport retry policy; zero value is one attempt
	Logger  *log.Logger     // Receives debug output about dropped records; nil discards
}

// Client provides access to the Lorem Picsum listing API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	logger  *log.Logger
}

// NewClient creates a picsum client.
func NewClient(opts Options) *Client {
	headers := map[string]string{
		"User-Agent": integrations.UserAgent(),
		"Accept":     "application/json",
	}
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		Client:  integrations.NewClient(headers, opts.Retry),
		baseURL: base,
		logger:  logger,
	}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchPage retrieves one page of photos.
//
// page starts at 1 and size must be positive; otherwise an
// [errors.ErrCodeInvalidInput] error is returned without a request.
//
// Records failing [photo.Photo.Validate] are dropped. If the service returned
// records but none survived, the page is reported as malformed rather than
// as an empty page, so a bad payload is never mistaken for the end of data.
//
// Returns:
//   - photos in service order on success (possibly empty: end of list)
//   - [integrations.ErrNotFound], [integrations.ErrNetwork] or
//     [integrations.ErrMalformed] in the error chain on failure
//
// No partial results are returned with an error.
func (c *Client) FetchPage(ctx context.Context, page, size int) ([]photo.Photo, error) {
	if err := errors.ValidatePage(page, size); err != nil {
		return nil, err
	}

	u, err := integrations.BuildURL(c.baseURL, listPath, url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(size)},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "base URL %q", c.baseURL)
	}

	var records []record
	if err := c.Get(ctx, u, &records); err != nil {
		return nil, err
	}
	return c.normalize(page, records)
}

func (c *Client) normalize(page int, records []record) ([]photo.Photo, error) {
	photos := make([]photo.Photo, 0, len(records))
	for _, r := range records {
		p := r.photo()
		if err := p.Validate(); err != nil {
			c.logger.Debug("dropping invalid record", "page", page, "id", r.ID, "err", err)
			continue
		}
		photos = append(photos, p)
	}
	if len(records) > 0 && len(photos) == 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidPhoto, integrations.ErrMalformed,
			"page %d: none of %d records are valid", page, len(records))
	}
	return photos, nil
}

// record is one entry of the /v2/list response.
type record struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
}

func (r record) photo() photo.Photo {
	return photo.Photo{
		ID:        r.ID,
		Author:    r.Author,
		Width:     r.Width,
		Height:    r.Height,
		SourceURL: r.DownloadURL,
		PageURL:   r.URL,
	}
}
