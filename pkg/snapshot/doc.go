// Package snapshot stores rendered HTML of a mounted tree.
//
//	store, err := snapshot.NewDiskStore("snapshots")
//	where, err := store.Put(ctx, "portal-step-2", snapshot.CaptureChildren(body))
//
// S3Store writes to a bucket through the AWS SDK; DiskStore writes files.
package snapshot
