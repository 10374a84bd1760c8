package syncer

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

const cacheBusterAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func cacheBuster(now time.Time) string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = cacheBusterAlphabet[rand.IntN(len(cacheBusterAlphabet))]
	}
	return fmt.Sprintf("%d-%s", now.Unix(), b)
}

func stripQuery(u string) string {
	base, _, _ := strings.Cut(u, "?")
	return base
}

// resolveURL turns a share link into a direct download link with a cache buster.
//   - 1drv.ms short links are followed; a onedrive.live.com target gets view.aspx
//     swapped for download.aspx plus download=1.
//   - sharepoint.com and onedrive.live.com links drop their query and get download=1.
//   - anything else drops its query and only gets the cache buster.
func (d *downloader) resolveURL(ctx context.Context, share string) string {
	cb := cacheBuster(d.now())
	base := stripQuery(share)

	switch {
	case strings.Contains(share, "1drv.ms"):
		target, err := d.followRedirects(ctx, share)
		if err == nil && strings.Contains(target, "onedrive.live.com") {
			direct := strings.Replace(target, "view.aspx", "download.aspx", 1)
			sep := "?"
			if strings.Contains(direct, "?") {
				sep = "&"
			}
			return direct + sep + "download=1&cb=" + cb
		}
	case strings.Contains(share, "sharepoint.com"), strings.Contains(share, "onedrive.live.com"):
		return base + "?download=1&cb=" + cb
	}

	return base + "?cb=" + cb
}

func (d *downloader) followRedirects(ctx context.Context, share string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, share, nil)
	if err != nil {
		return "", err
	}
	setNoCacheHeaders(req)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	return resp.Request.URL.String(), nil
}

func setNoCacheHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")
}
