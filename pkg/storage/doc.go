// Package storage keeps email documents (HTML templates and content
// dictionaries) in S3-compatible object storage.
//
// A Store reads objects by name under an optional key prefix and satisfies
// mailer.Source, so it can back both the template and content repositories:
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "mail-assets",
//		AccessKey: os.Getenv("S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("S3_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000",
//		PathStyle: true,
//		Prefix:    "templates",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	templates := mailer.NewTemplateRepository(store, "")
//
// Objects are fetched on every Read; nothing is cached.
//
// Missing objects are reported as ErrNotFound and permission failures as
// ErrAccessDenied. Both can be checked with errors.Is.
package storage
