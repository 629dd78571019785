package downloadmgr

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/minefetch/minefetch/internals/merrors"
	"github.com/minefetch/minefetch/internals/ownhttp"
)

var defaultClient = ownhttp.New()

// HTTPItem is a URL, target pair with optional properties that will be
// downloaded using http(s)
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
	Size   int
	Sha1   string
}

// NewHTTPItem creates a Item to be queued that will download the file
// using HTTP(S)
func NewHTTPItem(URL string, Target string) *HTTPItem {
	if URL == "" {
		panic("Download URL can not be empty")
	}
	if Target == "" {
		panic("Target can not be empty")
	}
	return &HTTPItem{defaultClient, URL, Target, 0, ""}
}

// Download downloads the item to the defined target using http.
// The file is written to a sibling ".part" file first and renamed
// into place once complete and verified.
func (i *HTTPItem) Download(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm); err != nil {
		return &merrors.IoError{Path: filepath.Dir(i.Target), Err: err}
	}

	client := i.Client
	if client == nil {
		client = defaultClient
	}

	body, err := Get(ctx, client, i.URL)
	if err != nil {
		return err
	}
	defer body.Close()

	part := i.Target + ".part"
	dest, err := os.Create(part)
	if err != nil {
		return &merrors.IoError{Path: part, Err: err}
	}
	if _, err := io.Copy(dest, body); err != nil {
		dest.Close()
		os.Remove(part)
		return &merrors.IoError{Path: part, Err: err}
	}
	if err := dest.Sync(); err != nil {
		dest.Close()
		return &merrors.IoError{Path: part, Err: err}
	}
	if err := dest.Close(); err != nil {
		return &merrors.IoError{Path: part, Err: err}
	}

	if i.Sha1 != "" {
		if err := checkSha1(i.Sha1, part); err != nil {
			return err
		}
	}

	if err := os.Rename(part, i.Target); err != nil {
		return &merrors.IoError{Path: i.Target, Err: err}
	}
	return nil
}

// Get issues a GET request and hands back the body. Any non-200
// response becomes a merrors.NetworkError carrying status and url.
func Get(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	if client == nil {
		client = defaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, &merrors.NetworkError{URL: url, Err: err}
	}
	if res.StatusCode != 200 {
		res.Body.Close()
		return nil, &merrors.NetworkError{URL: url, Status: res.StatusCode}
	}
	return res.Body, nil
}

// GetBytes fetches url into memory
func GetBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	body, err := Get(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

// ErrInvalidSha is returned when a downloaded file's sha1 sum does not
// match the expected one
type ErrInvalidSha struct {
	FileName    string
	ExpectedSha string
	ActualSha   string
}

func (e *ErrInvalidSha) Error() string {
	return fmt.Sprintf(
		"File corrupted: %s sha1 is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"\n",
		e.FileName,
		e.ExpectedSha,
		e.ActualSha,
	)
}

func checkSha1(sha string, srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return &merrors.IoError{Path: srcPath, Err: err}
	}
	defer src.Close()

	hasher := sha1.New()
	if _, err = io.Copy(hasher, src); err != nil {
		return &merrors.IoError{Path: srcPath, Err: err}
	}
	actualSha := fmt.Sprintf("%x", hasher.Sum(nil))
	if actualSha != sha {
		os.Remove(src.Name())
		return &ErrInvalidSha{src.Name(), sha, actualSha}
	}
	return nil
}
