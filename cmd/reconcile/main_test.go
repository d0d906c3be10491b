package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/pkg/snapshot"
)

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Addr != config.DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, config.DefaultAddr)
	}
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRunSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := snapshot.NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.New()
	cfg.Log.Level = "error"
	if err := runSnapshot(context.Background(), store, cfg, []string{"portal"}); err != nil {
		t.Fatalf("runSnapshot: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "portal-2.html"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "<div><i><b>PORTAL</b></i><o></o>AFTER</div>"; string(data) != want {
		t.Errorf("portal-2 = %q, want %q", data, want)
	}

	if err := runSnapshot(context.Background(), store, cfg, []string{"nope"}); err == nil {
		t.Error("unknown scenario should fail")
	}
}

// isolateAWS points the SDK at empty shared files so that the host's AWS
// setup does not leak into the test.
func isolateAWS(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, key := range []string{"AWS_REGION", "AWS_DEFAULT_REGION", "AWS_PROFILE", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	return dir
}

func TestOpenStore(t *testing.T) {
	isolateAWS(t)
	ctx := context.Background()

	cfg := config.New()
	cfg.Snapshot.Dir = t.TempDir()
	store, err := openStore(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*snapshot.DiskStore); !ok {
		t.Errorf("store = %T, want *snapshot.DiskStore", store)
	}

	cfg.Snapshot.Bucket = "snaps"
	cfg.Snapshot.Region = "eu-west-1"
	if store, err = openStore(ctx, cfg); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*snapshot.S3Store); !ok {
		t.Errorf("store = %T, want *snapshot.S3Store", store)
	}
}

func TestNewS3ClientUsesSharedProfile(t *testing.T) {
	dir := isolateAWS(t)
	profile := "[profile snaps]\nregion = eu-central-1\n"
	if err := os.WriteFile(filepath.Join(dir, "config"), []byte(profile), 0o600); err != nil {
		t.Fatal(err)
	}
	creds := "[snaps]\naws_access_key_id = AKID\naws_secret_access_key = secret\n"
	if err := os.WriteFile(filepath.Join(dir, "credentials"), []byte(creds), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AWS_PROFILE", "snaps")
	ctx := context.Background()

	client, err := newS3Client(ctx, "")
	if err != nil {
		t.Fatalf("newS3Client: %v", err)
	}
	if got := client.Options().Region; got != "eu-central-1" {
		t.Errorf("Region = %q, want eu-central-1 from the profile", got)
	}
	got, err := client.Options().Credentials.Retrieve(ctx)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if got.AccessKeyID != "AKID" {
		t.Errorf("AccessKeyID = %q, want AKID from the shared credentials file", got.AccessKeyID)
	}

	client, err = newS3Client(ctx, "us-east-2")
	if err != nil {
		t.Fatal(err)
	}
	if got := client.Options().Region; got != "us-east-2" {
		t.Errorf("Region = %q, want the configured override", got)
	}
}

func TestNewS3ClientRequiresRegion(t *testing.T) {
	isolateAWS(t)
	_, err := newS3Client(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error without any region")
	}
	if !strings.Contains(err.Error(), "E182") {
		t.Errorf("error = %v, want E182", err)
	}
}
