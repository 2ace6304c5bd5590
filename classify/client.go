package classify

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ubfsw/digitpad/log"
)

const imageFilename = "digit.png"

// Client posts rasters to a remote digit classifier.
type Client struct {
	url  string
	http *resty.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{url: url, http: rc}
}

func (c *Client) URL() string {
	return c.url
}

// Classify sends one multipart request and normalises the answer. It never
// retries.
func (c *Client) Classify(ctx context.Context, req Request) (*Result, error) {
	form := map[string]string{
		"true_label": strconv.Itoa(req.GroundTruth),
	}
	if req.Username != "" {
		// some backends read user_id, others username
		form["username"] = req.Username
		form["user_id"] = req.Username
	}
	if req.DeviceID != "" {
		form["device_id"] = req.DeviceID
	}

	r := c.http.R().
		SetContext(ctx).
		SetFileReader("image", imageFilename, bytes.NewReader(req.Image)).
		SetFormData(form)
	if req.AuthToken != "" {
		r.SetAuthToken(req.AuthToken)
	}

	log.Trace.Printf("posting %d byte raster to %s (true_label=%d)", len(req.Image), c.url, req.GroundTruth)
	res, err := r.Post(c.url)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if !res.IsSuccess() {
		log.Trace.Printf("classifier answered %s", res.Status())
		return nil, &HTTPError{
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Body:       res.String(),
		}
	}

	return extractResult(res.Body())
}
