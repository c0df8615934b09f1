// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import "testing"

func TestDriveImageURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"empty stays empty",
			"",
			"",
		},
		{
			"share link",
			"https://drive.google.com/file/d/1AbC_dEf/view?usp=sharing",
			"https://lh3.googleusercontent.com/d/1AbC_dEf",
		},
		{
			"open link with id param",
			"https://drive.google.com/open?id=1AbC_dEf&authuser=0",
			"https://lh3.googleusercontent.com/d/1AbC_dEf",
		},
		{
			"bare file id",
			"1AbC_dEf",
			"https://lh3.googleusercontent.com/d/1AbC_dEf",
		},
		{
			"non-drive URL passes through",
			"https://example.com/photo.jpg",
			"https://example.com/photo.jpg",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DriveImageURL(tc.in); got != tc.want {
				t.Errorf("DriveImageURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
