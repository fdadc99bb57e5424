// Package pictdb implements a single-file image store.
//
// A database is one file holding a fixed-size header, a fixed-size table
// of metadata slots, and an append-only region of JPEG blobs. Each slot
// tracks an identifier and, lazily, up to three resolutions of the same
// picture (thumbnail, small, original); resolutions other than the
// original are materialized on first read and shared across slots whose
// original content is identical.
//
// # Basic usage
//
//	db, err := pictdb.Create("photos.pictdb", pictdb.Config{
//	    MaxFiles:  100,
//	    ThumbRes:  pictdb.Dimensions{Width: 64, Height: 64},
//	    SmallRes:  pictdb.Dimensions{Width: 256, Height: 256},
//	})
//	if err != nil {
//	    // handle error
//	}
//	defer db.Close()
//
//	err = db.Insert("cat", jpegBytes)
//	orig, err := db.Read("cat", pictdb.Original)
//
// # Concurrency
//
// A Db is owned by exactly one caller and is not safe for concurrent use.
// There is no internal locking; a collaborator that shares a Db across
// goroutines (such as an HTTP server) must serialize its own access.
//
// # Errors
//
// Every fallible method returns an error classified by [Kind], inspectable
// with [errors.As] against [*Error] or compared with [errors.Is] against the
// Err* sentinels in this package.
package pictdb
