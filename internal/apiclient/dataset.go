// Copyright (c) 2025 Dataweb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	apierrors "dataweb/cli/internal/errors"
)

// DatasetInfo is the public description of the dataset.
type DatasetInfo struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Author      string   `json:"author"`
	Citation    string   `json:"citation"`
	FileTypes   []string `json:"file_types"`
}

// Download reports a completed dataset download.
type Download struct {
	// Filename is the name suggested by the server's Content-Disposition.
	Filename string
	Bytes    int64
}

// DatasetInfo calls GET /dataset/info. No authentication required.
func (c *Client) DatasetInfo(ctx context.Context) (*DatasetInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoints.DatasetInfo, nil)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.RequestFailed, "GET "+c.endpoints.DatasetInfo, err)
	}
	var info DatasetInfo
	if err := c.doJSON(req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DownloadDataset calls GET /dataset/download and streams the ZIP archive into w.
// The server requires a bearer token; the transport attaches it.
func (c *Client) DownloadDataset(ctx context.Context, w io.Writer) (*Download, error) {
	op := "GET " + c.endpoints.Download
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoints.Download, nil)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.RequestFailed, op, err)
	}
	req.Header.Set("Accept", "application/zip, application/octet-stream")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return nil, apierrors.Wrap(apierrors.RequestFailed, op, fmt.Errorf("read archive: %w", err))
	}
	return &Download{Filename: attachmentName(resp.Header.Get("Content-Disposition")), Bytes: n}, nil
}

// attachmentName returns the filename parameter of a Content-Disposition header.
func attachmentName(cd string) string {
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// Ping calls GET / on the server root (outside the API prefix) and returns
// the welcome message. It is used to check connectivity.
func (c *Client) Ping(ctx context.Context) (string, error) {
	root := *c.baseURL
	root.Path = "/"
	root.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root.String(), nil)
	if err != nil {
		return "", apierrors.Wrap(apierrors.RequestFailed, "GET /", err)
	}
	c.setStandardHeaders(req)

	var out struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
