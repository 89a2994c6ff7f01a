// Package drive wraps the Google Drive v3 API for folder listing and file
// content retrieval.
package drive

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"schedproc/internal"
	"schedproc/internal/config"
)

const (
	mimeFolder      = "application/vnd.google-apps.folder"
	mimeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	mimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Client struct {
	svc      *drive.Service
	pageSize int64
}

func NewClient(ctx context.Context, cfg config.Config) (*Client, error) {
	if err := cfg.Require("GOOGLE_CLIENT_ID", cfg.GoogleClientID); err != nil {
		return nil, err
	}
	if err := cfg.Require("GOOGLE_CLIENT_SECRET", cfg.GoogleClientSecret); err != nil {
		return nil, err
	}
	if err := cfg.Require("GOOGLE_REFRESH_TOKEN", cfg.GoogleRefreshToken); err != nil {
		return nil, err
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.GoogleRedirectURI,
		Scopes:       []string{drive.DriveReadonlyScope},
	}

	base := &http.Client{Timeout: time.Duration(cfg.DriveTimeoutMs) * time.Millisecond}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.GoogleRefreshToken})

	svc, err := drive.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &Client{svc: svc, pageSize: int64(cfg.DrivePageSize)}, nil
}

// ListFolders returns the child folders of parentID.
func (c *Client) ListFolders(ctx context.Context, parentID string) ([]internal.DriveFolder, error) {
	query := "'" + parentID + "' in parents and mimeType='" + mimeFolder + "' and trashed=false"

	out := []internal.DriveFolder{}
	pageToken := ""
	for {
		call := c.svc.Files.List().Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name)").
			PageSize(c.pageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, asFetchError("folders of "+parentID, err)
		}
		for _, f := range resp.Files {
			out = append(out, internal.DriveFolder{ID: f.Id, Name: f.Name})
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return out, nil
}

// ListFiles returns the non-folder files directly inside folderID.
func (c *Client) ListFiles(ctx context.Context, folderID string) ([]internal.DriveFile, error) {
	query := "'" + folderID + "' in parents and mimeType!='" + mimeFolder + "' and trashed=false"

	out := []internal.DriveFile{}
	pageToken := ""
	for {
		call := c.svc.Files.List().Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)").
			PageSize(c.pageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, asFetchError("files of "+folderID, err)
		}
		for _, f := range resp.Files {
			out = append(out, internal.DriveFile{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}
	return out, nil
}

// Download fetches a file's content. Native Google Sheets are exported as
// xlsx; anything else is downloaded as stored.
func (c *Client) Download(ctx context.Context, file internal.DriveFile) ([]byte, error) {
	var resp *http.Response
	var err error
	if file.MimeType == mimeGoogleSheet {
		resp, err = c.svc.Files.Export(file.ID, mimeXLSX).Context(ctx).Download()
	} else {
		resp, err = c.svc.Files.Get(file.ID).Context(ctx).Download()
	}
	if err != nil {
		return nil, asFetchError(file.Name, err)
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, asFetchError(file.Name, err)
	}
	return blob, nil
}

func asFetchError(name string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &internal.FetchError{Name: name, Status: gerr.Code, Err: err}
	}
	return &internal.FetchError{Name: name, Err: err}
}
