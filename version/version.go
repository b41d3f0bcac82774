// Package version checks for newer releases and compares version strings.
package version

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/metafates/gache"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/where"
)

// ReleasesURL points at the latest release of the GitHub repository.
var ReleasesURL = "https://api.github.com/repos/zalukaj-cli/zalukaj/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest released version without the "v" prefix.
// The answer is cached for two days to stay under the API rate limit.
func Latest() (string, error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	ver, err = fetchLatest(ReleasesURL)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(ver)
	return ver, nil
}

func fetchLatest(url string) (string, error) {
	var release struct {
		TagName string `json:"tag_name"`
	}

	resp, err := resty.New().
		SetTimeout(5*time.Second).
		R().
		SetHeader("Accept", "application/vnd.github+json").
		SetResult(&release).
		Get(url)
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", fmt.Errorf("release lookup: %s", resp.Status())
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
