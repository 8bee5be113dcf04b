// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import "testing"

func TestBlobName(t *testing.T) {
	tests := map[string]struct {
		filename string
		version  int
		want     string
	}{
		"Session": {
			filename: "report.txt",
			version:  3,
			want:     "app/user/s1/report.txt/3",
		},
		"UserNamespace": {
			filename: "user:profile.json",
			version:  0,
			want:     "app/user/user/user:profile.json/0",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := blobName("app", "user", "s1", tt.filename, tt.version); got != tt.want {
				t.Errorf("blobName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitBlobName(t *testing.T) {
	tests := map[string]struct {
		name         string
		wantFilename string
		wantVersion  int
		wantOK       bool
	}{
		"Simple":      {name: "report.txt/2", wantFilename: "report.txt", wantVersion: 2, wantOK: true},
		"NestedName":  {name: "dir/report.txt/10", wantFilename: "dir/report.txt", wantVersion: 10, wantOK: true},
		"NoVersion":   {name: "report.txt", wantOK: false},
		"BadVersion":  {name: "report.txt/latest", wantOK: false},
		"EmptyPrefix": {name: "/1", wantOK: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			filename, version, ok := splitBlobName(tt.name)
			if ok != tt.wantOK || filename != tt.wantFilename || version != tt.wantVersion {
				t.Errorf("splitBlobName(%q) = %q, %d, %t, want %q, %d, %t",
					tt.name, filename, version, ok, tt.wantFilename, tt.wantVersion, tt.wantOK)
			}
		})
	}
}
