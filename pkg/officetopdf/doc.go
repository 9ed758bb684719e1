// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package officetopdf is a client for an office-to-pdf conversion server.
//
// The server exposes a single LibreOffice route, POST /convert_to_pdf, which
// accepts one or more documents as multipart parts named "file" and answers
// with a PDF, or with a ZIP holding one PDF per document when several were
// sent.
//
//	c, err := officetopdf.New("http://127.0.0.1:8000")
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	c.AddHeaders(map[string]string{"Authorization": "Bearer " + token})
//
//	resp, err := c.LibreOffice.ToPDF().
//		Convert("q1.xlsx").
//		Convert("q2.xlsx").
//		Run(ctx)
//	if err != nil {
//		return err
//	}
//	return resp.ToFile("quarters.zip")
//
// Files are opened when Run is called and closed before it returns. Errors
// from the HTTP transport are returned unchanged; a reply outside 2xx is an
// *HTTPStatusError carrying the status and body.
package officetopdf
