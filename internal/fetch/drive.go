package fetch

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

var driveConfirmTokenRe = regexp.MustCompile(`confirm=([0-9A-Za-z_-]+)`)

// downloadGoogleDrive fetches a file through Drive's uc endpoint. Files
// above Drive's scan limit come back as an HTML "can't scan for viruses"
// interstitial instead of the content; in that case the confirmation
// form is parsed and the download retried with its parameters.
func (d *Downloader) downloadGoogleDrive(ctx context.Context, rawURL string) (*Result, error) {
	fileID := DriveFileID(rawURL)
	if fileID == "" {
		return nil, &Error{URL: rawURL, Message: "could not extract Google Drive file id"}
	}

	directURL := "https://drive.google.com/uc?export=download&id=" + fileID
	resp, err := d.do(ctx, "GET", directURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isHTML(resp) {
		return d.result(resp, "google_drive_"+fileID+".pdf", ProviderGoogleDrive, rawURL)
	}

	page, err := d.readBody(resp)
	if err != nil {
		return nil, err
	}
	confirmURL, confirmErr := driveConfirmURL(string(page), fileID)
	if confirmErr != nil {
		return nil, &Error{URL: rawURL, Message: "virus-scan confirmation", Cause: confirmErr}
	}

	d.logger.Debug("bypassing Drive virus-scan interstitial",
		zap.String("file_id", fileID))

	confirmed, err := d.do(ctx, "GET", confirmURL)
	if err != nil {
		return nil, err
	}
	defer confirmed.Body.Close()
	if isHTML(confirmed) {
		return nil, &Error{URL: rawURL, Message: "Drive returned HTML after confirmation; file may require sign-in"}
	}
	return d.result(confirmed, "google_drive_"+fileID+".pdf", ProviderGoogleDrive, rawURL)
}

// driveConfirmURL derives the confirmed download URL from the
// interstitial page: preferably from the download form's action and
// hidden inputs, otherwise from a confirm= token in the page source.
func driveConfirmURL(page, fileID string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err == nil {
		if form := doc.Find("form#download-form").First(); form.Length() > 0 {
			if action, ok := form.Attr("action"); ok && action != "" {
				values := url.Values{}
				form.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
					name, _ := input.Attr("name")
					value, _ := input.Attr("value")
					if name != "" {
						values.Set(name, value)
					}
				})
				if values.Get("id") == "" {
					values.Set("id", fileID)
				}
				if values.Get("export") == "" {
					values.Set("export", "download")
				}
				return action + "?" + values.Encode(), nil
			}
		}
	}
	if m := driveConfirmTokenRe.FindStringSubmatch(page); m != nil {
		return fmt.Sprintf("https://drive.google.com/uc?export=download&id=%s&confirm=%s", fileID, m[1]), nil
	}
	return "", fmt.Errorf("no confirmation token found in interstitial page")
}
