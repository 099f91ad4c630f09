// Package file reads attachment content from the local filesystem or from
// Amazon S3 (and S3-compatible services).
//
// All sources implement Reader. A Resolver dispatches a path to the
// matching source by its URL scheme: "s3://bucket/key" goes to an S3Reader
// and plain paths go to a LocalReader.
//
//	s3r, err := file.NewS3Reader(ctx, file.S3Config{Region: "eu-west-1"})
//	if err != nil {
//	    return err
//	}
//	r := file.NewResolver(file.NewLocalReader(), file.WithScheme("s3", s3r))
//	data, err := r.ReadFile(ctx, "s3://invoices/2024/inv-001.pdf")
//
// ContentTypeByName and BaseName derive attachment metadata from a path.
//
// # Error Handling
//
// Readers return errors that match the sentinels in errors.go, for example
// ErrFileNotFound or ErrAccessDenied, and keep the underlying cause in the
// chain.
package file
