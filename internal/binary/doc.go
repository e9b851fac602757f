// Package binary downloads the prebuilt fetch executable for the current
// platform and keeps a single copy of it on disk.
//
// The executable is fetched once from a versioned GitHub release:
//
//	https://github.com/gruntwork-io/fetch/releases/download/<version>/<binary name>
//
// GitHub answers with a redirect to the asset storage URL; the downloader
// follows exactly one redirect and streams the body to disk. Nothing is
// retried and the artifact is not verified.
//
// # Concurrent first runs
//
// Two processes may start before the binary exists. The fetcher takes an
// advisory lock file next to the binary before downloading and re-checks for
// the binary once it holds the lock. The body is written to a uniquely named
// temp file in the same directory and renamed into place, so readers never
// see a partial executable and a failed download leaves nothing behind.
//
// # Usage
//
//	f, err := binary.NewFetcher(binary.Config{
//	    BinDir:       "/opt/fetchbin",
//	    PlatformInfo: info,
//	})
//	if err != nil {
//	    return err
//	}
//	res, err := f.EnsureInstalled(ctx)
package binary
