// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/artifact"
	"github.com/zshehov/adk-python-sub001/types"
)

func TestInMemoryService(t *testing.T) {
	ctx := t.Context()
	svc := artifact.NewInMemoryService()
	t.Cleanup(func() { svc.Close() })

	for i, text := range []string{"v0", "v1", "v2"} {
		version, err := svc.SaveArtifact(ctx, "app", "user", "s1", "report.txt", genai.NewPartFromText(text))
		if err != nil {
			t.Fatalf("SaveArtifact: %v", err)
		}
		if version != i {
			t.Errorf("SaveArtifact version = %d, want %d", version, i)
		}
	}
	if _, err := svc.SaveArtifact(ctx, "app", "user", "s1", "user:profile.json", genai.NewPartFromText("{}")); err != nil {
		t.Fatalf("SaveArtifact: %v", err)
	}

	latest, err := svc.LoadArtifact(ctx, "app", "user", "s1", "report.txt", types.LatestArtifactVersion)
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}
	if latest.Text != "v2" {
		t.Errorf("latest = %q, want v2", latest.Text)
	}
	first, err := svc.LoadArtifact(ctx, "app", "user", "s1", "report.txt", 0)
	if err != nil {
		t.Fatalf("LoadArtifact: %v", err)
	}
	if first.Text != "v0" {
		t.Errorf("version 0 = %q, want v0", first.Text)
	}
	if missing, err := svc.LoadArtifact(ctx, "app", "user", "s1", "report.txt", 7); err != nil || missing != nil {
		t.Errorf("LoadArtifact(version 7) = %v, %v, want nil, nil", missing, err)
	}

	versions, err := svc.ListVersions(ctx, "app", "user", "s1", "report.txt")
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, versions); diff != "" {
		t.Errorf("versions mismatch (-want +got):\n%s", diff)
	}

	// user scoped artifacts are visible from every session of the user
	keys, err := svc.ListArtifactKey(ctx, "app", "user", "s2")
	if err != nil {
		t.Fatalf("ListArtifactKey: %v", err)
	}
	if diff := cmp.Diff([]string{"user:profile.json"}, keys); diff != "" {
		t.Errorf("s2 keys mismatch (-want +got):\n%s", diff)
	}
	keys, err = svc.ListArtifactKey(ctx, "app", "user", "s1")
	if err != nil {
		t.Fatalf("ListArtifactKey: %v", err)
	}
	if diff := cmp.Diff([]string{"report.txt", "user:profile.json"}, keys); diff != "" {
		t.Errorf("s1 keys mismatch (-want +got):\n%s", diff)
	}

	if err := svc.DeleteArtifact(ctx, "app", "user", "s1", "report.txt"); err != nil {
		t.Fatalf("DeleteArtifact: %v", err)
	}
	if got, err := svc.LoadArtifact(ctx, "app", "user", "s1", "report.txt", types.LatestArtifactVersion); err != nil || got != nil {
		t.Errorf("LoadArtifact after delete = %v, %v, want nil, nil", got, err)
	}
}
