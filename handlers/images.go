// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import "strings"

// PlaceholderPhotoURL is shown for candidates without a photo.
const PlaceholderPhotoURL = "https://via.placeholder.com/300x200.png?text=No+Foto"

// DriveImageURL normalizes the photo references admins paste in.
// Google Drive share links ("/d/<id>/" or "?id=<id>") and bare file
// ids become direct lh3 image URLs; any other URL passes through
// unchanged; empty stays empty.
func DriveImageURL(urlOrID string) string {
	if urlOrID == "" {
		return ""
	}

	fileID := urlOrID
	switch {
	case strings.Contains(urlOrID, "drive.google.com"):
		if _, after, ok := strings.Cut(urlOrID, "/d/"); ok {
			fileID, _, _ = strings.Cut(after, "/")
		} else if _, after, ok := strings.Cut(urlOrID, "id="); ok {
			fileID, _, _ = strings.Cut(after, "&")
		}
	case strings.Contains(urlOrID, "://"):
		// Already a non-Drive URL; leave it alone.
		return urlOrID
	}

	return "https://lh3.googleusercontent.com/d/" + fileID
}
