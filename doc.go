// Package s3templates resolves named templates against an S3-compatible
// object store, with an in-process cache to avoid repeated bucket listings.
// It is meant to back a host templating engine: given a template name it
// answers whether the template exists, what its bytes are, and when it
// was last modified.
package s3templates
